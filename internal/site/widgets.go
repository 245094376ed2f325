package site

import (
	"math/rand/v2"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/pkg/fragment"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/qrcode"
	"github.com/dmitrymomot/folio/pkg/randomname"
	"github.com/dmitrymomot/folio/pkg/worklist"
	"github.com/dmitrymomot/folio/pkg/writingprompt"
)

// maxSeed keeps seeds exact when they pass through JavaScript numbers.
const maxSeed = 1 << 53

type nameRequest struct {
	Middle  bool   `query:"middle" json:"middle"`
	Epithet bool   `query:"epithet" json:"epithet"`
	Seed    uint64 `query:"seed" json:"seed"`
}

type promptRequest struct {
	Twist   bool   `query:"twist" json:"twist"`
	Shuffle bool   `query:"shuffle" json:"shuffle"`
	Seed    uint64 `query:"seed" json:"seed"`
}

// readSignals overlays Datastar signals on req. It reports false when the
// signals are malformed; the caller then answers with an empty response.
func (s *Site) readSignals(ctx handler.Context, widget string, req any) bool {
	r := ctx.Request()
	if !handler.IsDataStar(r) {
		return true
	}
	if err := handler.ReadSignals(r, req); err != nil {
		s.log.WarnContext(ctx, "malformed signals", logger.Widget(widget), logger.Error(err))
		return false
	}
	return true
}

func newSeed() uint64 {
	return rand.Uint64N(maxSeed-1) + 1
}

func (s *Site) sortWorks(ctx handler.Context, req worksRequest) handler.Response {
	if !s.readSignals(ctx, "works", &req) {
		return handler.Empty()
	}
	key, err := worklist.ParseSortKey(req.Sort)
	if err != nil {
		s.log.WarnContext(ctx, "unknown sort key", logger.Widget("works"), logger.SortKey(req.Sort))
		if handler.IsDataStar(ctx.Request()) {
			return handler.Empty()
		}
		return handler.Error(handler.ErrBadRequest)
	}
	if !handler.IsDataStar(ctx.Request()) {
		return handler.Templ(s.worksView(key))
	}
	items := worklist.Resort(s.content.Works, key)
	return handler.TemplMulti(
		handler.Patch(workList("work-list", items, worklist.Fields(key))),
		handler.Patch(sortStatus(key, len(items))),
	)
}

// generateName draws a name for req. A zero seed picks a fresh one; the seed
// used is returned so the result can be linked to.
func (s *Site) generateName(ctx handler.Context, req nameRequest) handler.Response {
	if !s.readSignals(ctx, "names", &req) {
		return handler.Empty()
	}
	if req.Seed == 0 {
		req.Seed = newSeed()
	}
	view, err := s.nameView(req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.TemplPartial(widgetOutput(view), s.layout(namesMeta, widgetBody(view)))
}

func (s *Site) namesPage(_ handler.Context, req nameRequest) handler.Response {
	view, err := s.nameView(req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(s.layout(namesMeta, widgetBody(view)))
}

var namesMeta = pageMeta{
	Path:        "/names",
	Title:       "Wuxia name generator",
	Description: "Generate names for wandering swordsmen, sect elders and innkeepers with secrets.",
}

// nameView renders the names widget. Without a seed the output is left
// empty until the visitor asks for a name.
func (s *Site) nameView(req nameRequest) (widgetView, error) {
	view := widgetView{
		Name:    "name",
		Heading: "Wuxia name generator",
		Intro:   "Pick what to include and press the button. Every name has a permalink you can share.",
		Action:  "/names/generate",
		Button:  "Generate name",
		Toggles: []toggle{
			{Name: "middle", Label: "Middle name", On: req.Middle},
			{Name: "epithet", Label: "Epithet", On: req.Epithet},
		},
		Empty:    "Press “Generate name” to meet someone new.",
		QRAltFor: "name",
	}
	if req.Seed == 0 {
		return view, nil
	}
	res, err := s.name(req)
	if err != nil {
		return view, err
	}
	view.Result, err = s.result(res.Text, req.permalink())
	return view, err
}

func (req nameRequest) permalink() string {
	return "/names?" + url.Values{
		"seed":    {strconv.FormatUint(req.Seed, 10)},
		"middle":  {strconv.FormatBool(req.Middle)},
		"epithet": {strconv.FormatBool(req.Epithet)},
	}.Encode()
}

func (s *Site) name(req nameRequest) (fragment.Result, error) {
	g, err := randomname.NewFromConfig(s.nameCfg, fragment.WithSeed(req.Seed))
	if err != nil {
		return fragment.Result{}, err
	}
	return g.Generate(randomname.Options{Middle: req.Middle, Epithet: req.Epithet}), nil
}

func (s *Site) generatePrompt(ctx handler.Context, req promptRequest) handler.Response {
	if !s.readSignals(ctx, "prompts", &req) {
		return handler.Empty()
	}
	if req.Seed == 0 {
		req.Seed = newSeed()
	}
	view, err := s.promptView(req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.TemplPartial(widgetOutput(view), s.layout(promptsMeta, widgetBody(view)))
}

func (s *Site) promptsPage(_ handler.Context, req promptRequest) handler.Response {
	view, err := s.promptView(req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(s.layout(promptsMeta, widgetBody(view)))
}

var promptsMeta = pageMeta{
	Path:        "/prompts",
	Title:       "Writing prompts",
	Description: "A subject, a conflict and a place to start. Add a twist if you dare.",
}

func (s *Site) promptView(req promptRequest) (widgetView, error) {
	view := widgetView{
		Name:    "prompt",
		Heading: "Writing prompts",
		Intro:   "Stuck on a blank page? Draw a prompt and write for twenty minutes.",
		Action:  "/prompts/generate",
		Button:  "Generate prompt",
		Toggles: []toggle{
			{Name: "twist", Label: "Add a twist", On: req.Twist},
			{Name: "shuffle", Label: "Shuffle sentences", On: req.Shuffle},
		},
		Empty:    "Press “Generate prompt” for something to write about.",
		QRAltFor: "prompt",
	}
	if req.Seed == 0 {
		return view, nil
	}
	res, err := s.prompt(req)
	if err != nil {
		return view, err
	}
	view.Result, err = s.result(res.Text, req.permalink())
	return view, err
}

func (req promptRequest) permalink() string {
	return "/prompts?" + url.Values{
		"seed":    {strconv.FormatUint(req.Seed, 10)},
		"twist":   {strconv.FormatBool(req.Twist)},
		"shuffle": {strconv.FormatBool(req.Shuffle)},
	}.Encode()
}

func (s *Site) prompt(req promptRequest) (fragment.Result, error) {
	g, err := writingprompt.NewFromConfig(s.promptCfg, fragment.WithSeed(req.Seed))
	if err != nil {
		return fragment.Result{}, err
	}
	return g.Generate(writingprompt.Options{Twist: req.Twist, Shuffle: req.Shuffle}), nil
}

func (s *Site) result(text, link string) (*generated, error) {
	qr, err := qrcode.DataURI(s.content.URL(link), qrcode.WithSize(128))
	if err != nil {
		return nil, err
	}
	return &generated{Text: text, Permalink: link, QR: qr}, nil
}
