package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// TemplComponent matches templ.Component.
type TemplComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// TemplOption is a Datastar element patch option.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector of the element to patch.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the fragment is merged into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one component with its own patch options, for TemplMulti.
type TemplPatch struct {
	Component TemplComponent
	Options   []TemplOption
}

func Patch(component TemplComponent, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

func renderHTML(w http.ResponseWriter, r *http.Request, status int, components ...TemplComponent) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != 0 && status != http.StatusOK {
		w.WriteHeader(status)
	}
	for _, c := range components {
		if err := c.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

type templResponse struct {
	status  int
	partial TemplComponent
	full    TemplComponent
	options []TemplOption
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}
	return renderHTML(w, r, t.status, t.full)
}

// Templ renders component as HTML, or as a single element patch for
// Datastar requests.
func Templ(component TemplComponent, opts ...TemplOption) Response {
	return templResponse{partial: component, full: component, options: opts}
}

// TemplStatus renders component as an HTML page with the given status code.
func TemplStatus(status int, component TemplComponent) Response {
	return templResponse{status: status, partial: component, full: component}
}

// TemplPartial patches partial for Datastar requests and renders full
// otherwise, so a widget endpoint also works as a plain link.
func TemplPartial(partial, full TemplComponent, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}

type templMultiResponse struct {
	patches []TemplPatch
}

func (t templMultiResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}
	components := make([]TemplComponent, 0, len(t.patches))
	for _, p := range t.patches {
		components = append(components, p.Component)
	}
	return renderHTML(w, r, http.StatusOK, components...)
}

// TemplMulti sends one patch per component for Datastar requests and the
// concatenated HTML otherwise.
func TemplMulti(patches ...TemplPatch) Response {
	return templMultiResponse{patches: patches}
}
