package sitecheck

import (
	"io/fs"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed page plus the filesystem it was exported into.
type Document struct {
	// Path is slash separated and relative to the site root.
	Path string
	Root *html.Node
	FS   fs.FS
}

// Elements returns every element node with the given tag, in document order.
func (d *Document) Elements(tag atom.Atom) []*html.Node {
	var out []*html.Node
	for n := range d.Root.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == tag {
			out = append(out, n)
		}
	}
	return out
}

// meta returns the first <meta> whose attr equals value, case-insensitively.
func (d *Document) meta(attr, value string) *html.Node {
	for _, n := range d.Elements(atom.Meta) {
		if strings.EqualFold(Attr(n, attr), value) {
			return n
		}
	}
	return nil
}

// Resolve maps a local URL reference to a path inside FS. ok is false for
// external, data, fragment-only and protocol-relative references.
func (d *Document) Resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	p := u.Path
	if p == "" {
		return "", false
	}
	if !strings.HasPrefix(p, "/") {
		p = path.Join("/", path.Dir(d.Path), p)
	}
	// Cleaning against "/" clamps "../" at the site root like a browser does.
	p = strings.TrimPrefix(path.Clean(p), "/")
	if p == "" {
		p = "index.html"
	}
	return p, true
}

// Attr returns the value of the attribute key on n, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether n carries attribute key, even with an empty value.
func HasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

// Text returns the whitespace-collapsed text content of n.
func Text(n *html.Node) string {
	var sb strings.Builder
	for c := range n.Descendants() {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			sb.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func hasAncestor(n *html.Node, tag atom.Atom) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == tag {
			return true
		}
	}
	return false
}

// accessibleName approximates the accessible name of an element: aria-label,
// then text content, then alt text of contained images, then title.
func accessibleName(n *html.Node) string {
	if v := strings.TrimSpace(Attr(n, "aria-label")); v != "" {
		return v
	}
	if t := Text(n); t != "" {
		return t
	}
	for c := range n.Descendants() {
		if c.Type == html.ElementNode && c.DataAtom == atom.Img {
			if alt := strings.TrimSpace(Attr(c, "alt")); alt != "" {
				return alt
			}
		}
	}
	return strings.TrimSpace(Attr(n, "title"))
}

// describe renders a short selector-ish label for messages.
func describe(n *html.Node) string {
	s := "<" + n.Data
	if id := Attr(n, "id"); id != "" {
		s += ` id="` + id + `"`
	} else if name := Attr(n, "name"); name != "" {
		s += ` name="` + name + `"`
	}
	return s + ">"
}
