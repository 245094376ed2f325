package sitecheck

import (
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Check inspects one document and returns a message per problem found.
type Check struct {
	Name     string
	Severity Severity
	Run      func(doc *Document) []string
}

// DefaultChecks returns the full built-in suite.
func DefaultChecks() []Check {
	checks := SEOChecks()
	checks = append(checks, AccessibilityChecks()...)
	return append(checks, SanityChecks()...)
}

// SEOChecks covers title, description, canonical and social card metadata.
func SEOChecks() []Check {
	return []Check{
		{Name: "seo.title", Severity: Hard, Run: checkTitle},
		{Name: "seo.description", Severity: Hard, Run: requireMeta("name", "description")},
		{Name: "seo.canonical", Severity: Hard, Run: checkCanonical},
		{Name: "seo.og-title", Severity: Hard, Run: requireMeta("property", "og:title")},
		{Name: "seo.og-description", Severity: Hard, Run: requireMeta("property", "og:description")},
		{Name: "seo.og-url", Severity: Soft, Run: requireMeta("property", "og:url")},
		{Name: "seo.twitter-card", Severity: Soft, Run: requireMeta("name", "twitter:card")},
	}
}

// AccessibilityChecks covers language, alt text, headings and control names.
func AccessibilityChecks() []Check {
	return []Check{
		{Name: "a11y.lang", Severity: Hard, Run: checkLang},
		{Name: "a11y.img-alt", Severity: Hard, Run: checkImgAlt},
		{Name: "a11y.single-h1", Severity: Hard, Run: checkSingleH1},
		{Name: "a11y.button-name", Severity: Hard, Run: checkButtonName},
		{Name: "a11y.control-label", Severity: Hard, Run: checkControlLabels},
		{Name: "a11y.link-text", Severity: Soft, Run: checkLinkText},
	}
}

// SanityChecks covers ids, script links and referenced assets.
func SanityChecks() []Check {
	return []Check{
		{Name: "sanity.unique-ids", Severity: Hard, Run: checkUniqueIDs},
		{Name: "sanity.javascript-href", Severity: Hard, Run: checkJavaScriptHref},
		{Name: "sanity.local-assets", Severity: Hard, Run: checkLocalAssets},
		{Name: "sanity.console-log", Severity: Soft, Run: checkConsoleLog},
	}
}

func checkTitle(doc *Document) []string {
	titles := doc.Elements(atom.Title)
	switch {
	case len(titles) == 0:
		return []string{"missing <title>"}
	case Text(titles[0]) == "":
		return []string{"empty <title>"}
	case len(titles) > 1:
		return []string{fmt.Sprintf("%d <title> elements", len(titles))}
	}
	return nil
}

func requireMeta(attr, value string) func(*Document) []string {
	return func(doc *Document) []string {
		n := doc.meta(attr, value)
		if n == nil {
			return []string{fmt.Sprintf(`missing <meta %s="%s">`, attr, value)}
		}
		if strings.TrimSpace(Attr(n, "content")) == "" {
			return []string{fmt.Sprintf(`empty content on <meta %s="%s">`, attr, value)}
		}
		return nil
	}
}

func checkCanonical(doc *Document) []string {
	for _, n := range doc.Elements(atom.Link) {
		if hasToken(Attr(n, "rel"), "canonical") {
			if strings.TrimSpace(Attr(n, "href")) == "" {
				return []string{"canonical link without href"}
			}
			return nil
		}
	}
	return []string{`missing <link rel="canonical">`}
}

func checkLang(doc *Document) []string {
	for _, n := range doc.Elements(atom.Html) {
		if strings.TrimSpace(Attr(n, "lang")) != "" {
			return nil
		}
	}
	return []string{"<html> has no lang attribute"}
}

func checkImgAlt(doc *Document) []string {
	var msgs []string
	for _, n := range doc.Elements(atom.Img) {
		// alt="" is valid and marks a decorative image.
		if !HasAttr(n, "alt") {
			msgs = append(msgs, fmt.Sprintf("image %q has no alt attribute", Attr(n, "src")))
		}
	}
	return msgs
}

func checkSingleH1(doc *Document) []string {
	if n := len(doc.Elements(atom.H1)); n != 1 {
		return []string{fmt.Sprintf("expected exactly one <h1>, found %d", n)}
	}
	return nil
}

func checkButtonName(doc *Document) []string {
	var msgs []string
	for _, n := range doc.Elements(atom.Button) {
		if accessibleName(n) == "" {
			msgs = append(msgs, describe(n)+" has no accessible name")
		}
	}
	return msgs
}

func checkControlLabels(doc *Document) []string {
	labelled := make(map[string]bool)
	for _, l := range doc.Elements(atom.Label) {
		if id := Attr(l, "for"); id != "" {
			labelled[id] = true
		}
	}

	var controls []*html.Node
	controls = append(controls, doc.Elements(atom.Input)...)
	controls = append(controls, doc.Elements(atom.Select)...)
	controls = append(controls, doc.Elements(atom.Textarea)...)

	var msgs []string
	for _, n := range controls {
		if n.DataAtom == atom.Input {
			switch strings.ToLower(Attr(n, "type")) {
			case "hidden", "submit", "reset", "button", "image":
				continue
			}
		}
		switch {
		case strings.TrimSpace(Attr(n, "aria-label")) != "":
		case strings.TrimSpace(Attr(n, "aria-labelledby")) != "":
		case Attr(n, "id") != "" && labelled[Attr(n, "id")]:
		case hasAncestor(n, atom.Label):
		default:
			msgs = append(msgs, describe(n)+" has no label")
		}
	}
	return msgs
}

func checkLinkText(doc *Document) []string {
	var msgs []string
	for _, n := range doc.Elements(atom.A) {
		if !HasAttr(n, "href") {
			continue
		}
		if accessibleName(n) == "" {
			msgs = append(msgs, fmt.Sprintf("link to %q has no discernible text", Attr(n, "href")))
		}
	}
	return msgs
}

func checkUniqueIDs(doc *Document) []string {
	seen := make(map[string]int)
	var order []string
	for n := range doc.Root.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		if id := Attr(n, "id"); id != "" {
			if seen[id] == 0 {
				order = append(order, id)
			}
			seen[id]++
		}
	}
	var msgs []string
	for _, id := range order {
		if seen[id] > 1 {
			msgs = append(msgs, fmt.Sprintf("id %q used %d times", id, seen[id]))
		}
	}
	return msgs
}

func checkJavaScriptHref(doc *Document) []string {
	var msgs []string
	for _, n := range doc.Elements(atom.A) {
		href := strings.ToLower(strings.TrimSpace(Attr(n, "href")))
		if strings.HasPrefix(href, "javascript:") {
			msgs = append(msgs, fmt.Sprintf("link %q uses a javascript: URL", Text(n)))
		}
	}
	return msgs
}

func checkLocalAssets(doc *Document) []string {
	var refs []string
	for _, n := range doc.Elements(atom.Script) {
		if src := Attr(n, "src"); src != "" {
			refs = append(refs, src)
		}
	}
	for _, n := range doc.Elements(atom.Link) {
		if hasToken(Attr(n, "rel"), "stylesheet") {
			refs = append(refs, Attr(n, "href"))
		}
	}

	var msgs []string
	for _, ref := range refs {
		p, ok := doc.Resolve(ref)
		if !ok {
			continue
		}
		if _, err := fs.Stat(doc.FS, p); err != nil {
			msgs = append(msgs, fmt.Sprintf("asset %q does not exist", ref))
		}
	}
	return msgs
}

func checkConsoleLog(doc *Document) []string {
	var msgs []string
	for _, n := range doc.Elements(atom.Script) {
		if HasAttr(n, "src") {
			continue
		}
		if strings.Contains(Text(n), "console.log(") {
			msgs = append(msgs, "inline script calls console.log")
		}
	}
	return msgs
}

func hasToken(list, token string) bool {
	for f := range strings.FieldsSeq(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
