package site

import (
	"strconv"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/pkg/fragment"
	"github.com/dmitrymomot/folio/pkg/worklist"
)

type generatedJSON struct {
	Text      string            `json:"text"`
	Parts     map[string]string `json:"parts"`
	Seed      string            `json:"seed"`
	Permalink string            `json:"permalink"`
}

func toJSON(res fragment.Result, seed uint64, permalink string) generatedJSON {
	parts := make(map[string]string, len(res.Parts))
	for _, p := range res.Parts {
		parts[p.Slot] = p.Value
	}
	return generatedJSON{
		Text:      res.Text,
		Parts:     parts,
		Seed:      strconv.FormatUint(seed, 10),
		Permalink: permalink,
	}
}

func (s *Site) apiName(_ handler.Context, req nameRequest) handler.Response {
	if req.Seed == 0 {
		req.Seed = newSeed()
	}
	res, err := s.name(req)
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(toJSON(res, req.Seed, s.content.URL(req.permalink())))
}

func (s *Site) apiPrompt(_ handler.Context, req promptRequest) handler.Response {
	if req.Seed == 0 {
		req.Seed = newSeed()
	}
	res, err := s.prompt(req)
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(toJSON(res, req.Seed, s.content.URL(req.permalink())))
}

type workJSON struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Kind      string `json:"kind,omitempty"`
	Venue     string `json:"venue,omitempty"`
	Date      string `json:"date"`
	WordCount int    `json:"word_count"`
	Color     string `json:"color,omitempty"`
	URL       string `json:"url"`
}

func (s *Site) apiWorks(_ handler.Context, req worksRequest) handler.Response {
	key, err := worklist.ParseSortKey(req.Sort)
	if err != nil {
		return handler.JSONError(handler.ErrBadRequest)
	}
	items := worklist.Resort(s.content.Works, key)
	out := make([]workJSON, len(items))
	for i, it := range items {
		out[i] = workJSON{
			Slug:      it.Slug,
			Title:     it.Title,
			Kind:      it.Kind,
			Venue:     it.Venue,
			Date:      it.Date,
			WordCount: it.WordCount,
			Color:     it.Color,
			URL:       s.content.URL("/works/" + it.Slug),
		}
	}
	return handler.JSON(out, handler.WithJSONMeta(map[string]any{"sort": key.String()}))
}
