// Package views renders the htmx fragments. Each fragment is a templ component so handlers
// can stream it directly for swaps or embed it into a full page through templ.ToGoHTML.
package views

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

// Translator resolves an i18n key in the request language.
type Translator func(key string) string

// Embed renders c for inclusion in an html/template page.
func Embed(ctx context.Context, c templ.Component) (template.HTML, error) {
	return templ.ToGoHTML(ctx, c)
}

// htmlWriter keeps the first write error so fragments read top to bottom.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (p *htmlWriter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *htmlWriter) text(s string) {
	p.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped.
func (p *htmlWriter) attr(name, value string) {
	p.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// href writes an href attribute after URL sanitization.
func (p *htmlWriter) href(url string) {
	p.attr("href", string(templ.URL(url)))
}

func (p *htmlWriter) boolAttr(name string, on bool) {
	if on {
		p.raw(" " + name)
	}
}

func component(fn func(p *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		fn(p)
		return p.err
	})
}

func icon(p *htmlWriter, name string) {
	p.raw(`<svg class="icon" aria-hidden="true"><use`)
	p.attr("href", "/assets/icons.svg#"+name)
	p.raw(`></use></svg>`)
}
