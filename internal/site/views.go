package site

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/internal/content"
	"github.com/dmitrymomot/folio/pkg/worklist"
)

type pageMeta struct {
	// Path is the canonical path of the page.
	Path string
	// Title is empty on the home page, which uses the site title alone.
	Title       string
	Description string
}

type navLink struct {
	Path  string
	Label string
}

var nav = []navLink{
	{Path: "/", Label: "Home"},
	{Path: "/works", Label: "Works"},
	{Path: "/names", Label: "Names"},
	{Path: "/prompts", Label: "Prompts"},
}

func isActive(link, page string) bool {
	return link == page || (link != "/" && strings.HasPrefix(page, link+"/"))
}

// sprintf formats numbers with English digit grouping.
func sprintf(format string, args ...any) string {
	return message.NewPrinter(language.English).Sprintf(format, args...)
}

func (s *Site) layout(meta pageMeta, body templ.Component) templ.Component {
	c := s.content
	title := c.Title
	if meta.Title != "" {
		title = meta.Title + " · " + c.Title
	}
	desc := meta.Description
	if desc == "" {
		desc = c.Description
	}
	canonical := c.URL(meta.Path)

	return component(func(h *htmlWriter) {
		h.raw("<!doctype html>\n<html")
		h.attr("lang", c.Locale)
		h.raw(">\n<head>\n<meta charset=\"utf-8\">\n")
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`, "\n")
		h.raw("<title>")
		h.text(title)
		h.raw("</title>\n")
		h.raw(`<meta name="description"`)
		h.attr("content", desc)
		h.raw(">\n<link rel=\"canonical\"")
		h.attr("href", canonical)
		h.raw(">\n<meta property=\"og:type\" content=\"website\">\n<meta property=\"og:site_name\"")
		h.attr("content", c.Title)
		h.raw(">\n<meta property=\"og:title\"")
		h.attr("content", title)
		h.raw(">\n<meta property=\"og:description\"")
		h.attr("content", desc)
		h.raw(">\n<meta property=\"og:url\"")
		h.attr("content", canonical)
		h.raw(">\n<meta name=\"twitter:card\" content=\"summary\">\n")
		h.raw(`<link rel="stylesheet" href="/static/site.css">`, "\n")
		h.raw(`<script type="module"`)
		h.attr("src", s.datastarScript)
		h.raw("></script>\n</head>\n<body>\n")
		h.raw(`<a class="skip" href="#main">Skip to content</a>`, "\n")
		h.raw(`<header class="site-header"><a class="brand" href="/">`)
		h.text(c.Title)
		h.raw(`</a><nav aria-label="Main"><ul>`)
		for _, l := range nav {
			h.raw(`<li><a`)
			h.attr("href", l.Path)
			h.flag(`aria-current="page"`, isActive(l.Path, meta.Path))
			h.raw(">")
			h.text(l.Label)
			h.raw("</a></li>")
		}
		h.raw("</ul></nav></header>\n<main id=\"main\">\n")
		h.render(body)
		h.raw("\n</main>\n")
		h.raw(`<div id="toast" role="status" aria-live="polite"></div>`, "\n")
		h.raw(`<footer class="site-footer"><p>&copy; `)
		h.text(c.Author)
		h.raw("</p></footer>\n</body>\n</html>\n")
	})
}

func homeBody(c *content.Site) templ.Component {
	recent := worklist.Resort(c.Works, worklist.SortByDate)
	if len(recent) > 3 {
		recent = recent[:3]
	}
	return component(func(h *htmlWriter) {
		h.raw("<h1>")
		h.text(c.Title)
		h.raw("</h1>\n")
		if c.BioHTML != "" {
			h.raw(`<section class="bio">`, c.BioHTML, "</section>\n")
		}
		h.raw(`<section class="recent"><h2>Recent work</h2>`, "\n")
		h.render(workList("", recent, worklist.Fields(worklist.SortByDate)))
		h.raw(`<p><a href="/works">All works</a></p></section>`)
	})
}

// sortKeys returns the radio options for key: the default set, plus key
// itself when it is a legacy key reached through a link.
func sortKeys(key worklist.SortKey) []worklist.SortKey {
	keys := append([]worklist.SortKey(nil), worklist.DefaultKeys...)
	for _, k := range keys {
		if k == key {
			return keys
		}
	}
	return append(keys, key)
}

func worksBody(items []worklist.Item, key worklist.SortKey) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<h1>Works</h1>\n")
		h.raw(`<form class="sort" method="get" action="/works"`)
		h.attr("data-signals", fmt.Sprintf("{sort: %s}", strconv.Quote(key.String())))
		h.raw(` data-on-change="@get('/works/sort')">`)
		h.raw("<fieldset><legend>Order</legend>")
		for _, k := range sortKeys(key) {
			h.raw(`<label><input type="radio" name="sort" data-bind-sort`)
			h.attr("value", k.String())
			h.flag("checked", k == key)
			h.raw("> ")
			h.text(k.Label())
			h.raw("</label>")
		}
		h.raw("</fieldset>")
		h.raw(`<noscript><button type="submit">Apply</button></noscript>`)
		h.raw("</form>\n")
		h.render(sortStatus(key, len(items)))
		h.render(workList("work-list", items, worklist.Fields(key)))
	})
}

func sortStatus(key worklist.SortKey, n int) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<p id="sort-status" class="status" aria-live="polite">`)
		h.text(sprintf("%d works, %s.", n, lowerFirst(key.Label())))
		h.raw("</p>\n")
	})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

func workList(id string, items []worklist.Item, vis worklist.Visibility) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<ol")
		if id != "" {
			h.attr("id", id)
		}
		h.raw(` class="works">`, "\n")
		for _, it := range items {
			h.raw(`<li class="work"><h2 class="work-title"><a`)
			h.attr("href", "/works/"+it.Slug)
			h.raw(">")
			h.text(it.Title)
			h.raw("</a></h2>")
			h.render(workMeta(it, vis))
			if it.BlurbHTML != "" {
				h.raw(`<div class="blurb">`, it.BlurbHTML, "</div>")
			}
			h.raw("</li>\n")
		}
		h.raw("</ol>\n")
	})
}

func workMeta(it worklist.Item, vis worklist.Visibility) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<p class="work-meta">`)
		if it.Kind != "" {
			h.raw(`<span class="kind">`)
			h.text(it.Kind)
			h.raw("</span> ")
		}
		if it.Venue != "" {
			h.raw(`<span class="venue">`)
			h.text(it.Venue)
			h.raw("</span> ")
		}
		if vis.Date {
			h.raw("<time")
			h.attr("datetime", it.Date)
			h.raw(">")
			h.text(displayDate(it.Date))
			h.raw("</time>")
		}
		if vis.WordCount {
			h.raw(` <span class="words">`)
			h.text(sprintf("%d words", it.WordCount))
			h.raw("</span>")
		}
		if vis.Color && it.Color != "" {
			h.raw(` <span class="swatch"`)
			h.attr("style", "background-color:"+it.Color)
			h.raw(`></span><span class="sr-only">`)
			h.text("color " + it.Color)
			h.raw("</span>")
		}
		h.raw("</p>")
	})
}

func displayDate(token string) string {
	t, err := time.Parse(time.DateOnly, token)
	if err != nil {
		return token
	}
	return t.Format("2 January 2006")
}

func workBody(it worklist.Item) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<article class="work-detail"><h1>`)
		h.text(it.Title)
		h.raw("</h1>")
		h.render(workMeta(it, worklist.Visibility{Date: true, WordCount: true}))
		if it.BlurbHTML != "" {
			h.raw(`<div class="blurb">`, it.BlurbHTML, "</div>")
		}
		h.raw(`<p><a href="/works">Back to all works</a></p></article>`)
	})
}

// generated is the output of one widget run.
type generated struct {
	Text      string
	Permalink string
	QR        string
}

type toggle struct {
	Name  string
	Label string
	On    bool
}

type widgetView struct {
	Name     string // "name" or "prompt"
	Heading  string
	Intro    string
	Action   string
	Button   string
	Toggles  []toggle
	Result   *generated
	Empty    string
	QRAltFor string
}

func (v widgetView) outputID() string { return v.Name + "-output" }

func widgetBody(v widgetView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<h1>")
		h.text(v.Heading)
		h.raw("</h1>\n<p>")
		h.text(v.Intro)
		h.raw("</p>\n")

		signals := "{"
		for i, t := range v.Toggles {
			if i > 0 {
				signals += ", "
			}
			signals += fmt.Sprintf("%s: %t", t.Name, t.On)
		}
		signals += "}"

		h.raw(`<section class="widget"`)
		h.attr("data-signals", signals)
		h.raw(">\n<form method=\"get\"")
		h.attr("action", v.Action)
		h.attr("data-on-submit__prevent", "@get('"+v.Action+"')")
		h.raw("><fieldset><legend>Include</legend>")
		for _, t := range v.Toggles {
			h.raw(`<label><input type="checkbox" value="true"`)
			h.attr("name", t.Name)
			h.raw(" data-bind-" + t.Name)
			h.flag("checked", t.On)
			h.raw("> ")
			h.text(t.Label)
			h.raw("</label>")
		}
		h.raw(`</fieldset><button type="submit">`)
		h.text(v.Button)
		h.raw("</button></form>\n")
		h.render(widgetOutput(v))
		h.raw("</section>")
	})
}

func widgetOutput(v widgetView) templ.Component {
	id := v.outputID()
	return component(func(h *htmlWriter) {
		h.raw(`<div class="output" aria-live="polite" data-volatile`)
		h.attr("id", id)
		h.raw(">")
		if v.Result == nil {
			h.raw(`<p class="output-text placeholder">`)
			h.text(v.Empty)
			h.raw("</p></div>\n")
			return
		}
		h.raw(`<p class="output-text">`)
		h.text(v.Result.Text)
		h.raw(`</p><div class="output-actions"><button type="button"`)
		h.attr("data-on-click", "navigator.clipboard.writeText(document.querySelector('#"+id+" .output-text').textContent.trim())")
		h.raw(">Copy</button> <a")
		h.attr("href", v.Result.Permalink)
		h.raw(">Permalink</a>")
		if v.Result.QR != "" {
			h.raw(`<img class="qr" width="128" height="128"`)
			h.attr("src", v.Result.QR)
			h.attr("alt", "QR code linking to this "+v.QRAltFor)
			h.raw(">")
		}
		h.raw("</div></div>\n")
	})
}

func errorBody(p handler.ErrorPageParams) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="error"><h1>`)
		h.text(strconv.Itoa(p.StatusCode) + " " + p.Message)
		h.raw("</h1>")
		if p.StatusCode == 404 {
			h.raw("<p>There is nothing at this address.</p>")
		} else {
			h.raw("<p>Something went wrong on our side.</p>")
		}
		if p.RequestID != "" {
			h.raw(`<p class="request-id" data-volatile>Reference: <code>`)
			h.text(p.RequestID)
			h.raw("</code></p>")
		}
		h.raw(`<p><a href="/">Back to the home page</a></p></section>`)
	})
}

func errorToast(p handler.ErrorToastParams) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div role="alert"`)
		h.attr("class", "toast toast-"+p.Level)
		h.raw(">")
		h.text(p.Message)
		if p.RequestID != "" {
			h.raw(` <small data-volatile>`)
			h.text(p.RequestID)
			h.raw("</small>")
		}
		h.raw("</div>")
	})
}
