package handlers

import (
	"html/template"

	"nyaysathi.in/web/internal/nav"
	"nyaysathi.in/web/internal/seo"
)

// PageData is the view model shared by every full page using the base layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics
	CSRFToken string
	DevMode   bool

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	// Menu is the pre-rendered mobile menu fragment.
	Menu template.HTML

	// Optional per-page view model payloads
	Landing   any
	Chat      any
	Templates any
	Tools     any
	Dashboard any
	Help      any
}

// Alternates lists hreflang links for every supported language.
func Alternates(baseURL, path string, langs []string) []seo.Alternate {
	out := make([]seo.Alternate, 0, len(langs))
	for _, l := range langs {
		out = append(out, seo.Alternate{Href: baseURL + path + "?hl=" + l, Hreflang: l})
	}
	return out
}
