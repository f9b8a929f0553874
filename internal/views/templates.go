package views

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"nyaysathi.in/web/internal/catalog"
	"nyaysathi.in/web/internal/format"
)

const (
	// TemplateResultsID is the swap target for search and tab changes.
	TemplateResultsID = "template-results"
	// TemplatePreviewID receives the preview fragment.
	TemplatePreviewID = "template-preview"
	visibleTags       = 3
)

// CatalogView is the filtered catalog state.
type CatalogView struct {
	Query    string
	Category catalog.Category
	Counts   []catalog.CategoryCount
	Results  []catalog.Template
	Lang     string
	T        Translator
}

// CatalogURL is the shareable address of a filter state.
func CatalogURL(base, query string, category catalog.Category) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if category != "" && category != catalog.CategoryAll {
		v.Set("category", string(category))
	}
	if enc := v.Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}

// TemplateResults renders the category tabs with their fixed counts and the result grid,
// or the empty state when nothing matches.
func TemplateResults(v CatalogView) templ.Component {
	t := ensure(v.T)
	return component(func(p *htmlWriter) {
		p.raw(`<div class="template-results"`)
		p.attr("id", TemplateResultsID)
		p.attr("data-count", strconv.Itoa(len(v.Results)))
		p.raw(`><input type="hidden" name="category"`)
		p.attr("value", string(v.Category))
		p.raw(`>`)

		p.raw(`<nav class="tabs" role="tablist">`)
		for _, c := range v.Counts {
			active := c.ID == v.Category
			p.raw(`<a class="tab" role="tab"`)
			p.attr("data-category", string(c.ID))
			p.attr("aria-selected", boolString(active))
			p.href(CatalogURL("/templates", v.Query, c.ID))
			p.attr("hx-get", CatalogURL("/templates/results", v.Query, c.ID))
			p.attr("hx-target", "#"+TemplateResultsID)
			p.attr("hx-swap", "outerHTML")
			p.raw(`><span>`)
			p.text(translateOr(t, c.LabelKey, c.Label))
			p.raw(`</span><span class="badge badge--secondary" data-tab-count>`)
			p.text(strconv.Itoa(c.Count))
			p.raw(`</span></a>`)
		}
		p.raw(`</nav>`)

		if len(v.Results) == 0 {
			p.raw(`<div class="empty-state" data-empty-state>`)
			icon(p, "file-text")
			p.raw(`<h3>`)
			p.text(t("templates.empty.title"))
			p.raw(`</h3><p class="muted">`)
			p.text(t("templates.empty.body"))
			p.raw(`</p></div></div>`)
			return
		}

		p.raw(`<div class="grid grid--3">`)
		for _, tpl := range v.Results {
			writeTemplateCard(p, tpl, v.Lang, t)
		}
		p.raw(`</div></div>`)
	})
}

func writeTemplateCard(p *htmlWriter, tpl catalog.Template, lang string, t Translator) {
	p.raw(`<article class="card template-card"`)
	p.attr("data-template-id", tpl.ID)
	p.raw(`><header class="card__header"><span class="badge badge--`)
	p.raw(string(tpl.Category))
	p.raw(`">`)
	p.text(categoryLabel(tpl.Category, t))
	p.raw(`</span><span class="rating">`)
	icon(p, "star")
	p.text(strconv.FormatFloat(tpl.Rating, 'f', 1, 64))
	p.raw(`</span></header><h3 class="card__title">`)
	p.text(tpl.Title)
	p.raw(`</h3><p class="muted">`)
	p.text(tpl.Description)
	p.raw(`</p>`)

	p.raw(`<ul class="tags">`)
	for i, tag := range tpl.Tags {
		if i == visibleTags {
			break
		}
		p.raw(`<li class="badge badge--outline">`)
		p.text(tag)
		p.raw(`</li>`)
	}
	if extra := len(tpl.Tags) - visibleTags; extra > 0 {
		p.raw(`<li class="badge badge--outline" data-more-tags>`)
		p.text("+" + strconv.Itoa(extra) + " " + t("templates.more"))
		p.raw(`</li>`)
	}
	p.raw(`</ul>`)

	p.raw(`<footer class="card__meta"><span class="badge badge--lang"`)
	p.attr("data-language", string(tpl.Language))
	p.raw(`>`)
	icon(p, "languages")
	p.text(LanguageBadge(tpl.Language))
	p.raw(`</span><span class="downloads">`)
	icon(p, "download")
	p.text(format.Number(float64(tpl.Downloads), 0, lang))
	p.raw(`</span></footer>`)

	p.raw(`<div class="card__actions"><button type="button" class="btn btn--primary btn--sm" disabled>`)
	icon(p, "file-text")
	p.text(t("templates.generate"))
	p.raw(`</button><a class="btn btn--outline btn--sm"`)
	p.href("/templates/" + url.PathEscape(tpl.ID))
	p.attr("hx-get", "/templates/"+url.PathEscape(tpl.ID))
	p.attr("hx-target", "#"+TemplatePreviewID)
	p.attr("hx-swap", "outerHTML")
	p.attr("aria-label", t("templates.preview"))
	p.raw(`>`)
	icon(p, "eye")
	p.raw(`</a></div></article>`)
}

// LanguageBadge is the text on the language badge.
func LanguageBadge(l catalog.Language) string {
	switch l {
	case catalog.LanguageHindi:
		return "हिंदी"
	case catalog.LanguageEnglish:
		return "English"
	default:
		return "Bilingual"
	}
}

func categoryLabel(c catalog.Category, t Translator) string {
	for _, info := range catalog.Categories {
		if info.ID == c {
			return translateOr(t, "templates.badge."+string(c), info.Label)
		}
	}
	return string(c)
}

// PreviewView is a single template opened from a card.
type PreviewView struct {
	Template catalog.Template
	Lang     string
	T        Translator
	// CloseURL restores the catalog state the preview was opened from.
	CloseURL string
}

// TemplatePreview renders the full detail of one template.
func TemplatePreview(v PreviewView) templ.Component {
	t := ensure(v.T)
	tpl := v.Template
	return component(func(p *htmlWriter) {
		p.raw(`<aside class="template-preview card"`)
		p.attr("id", TemplatePreviewID)
		p.attr("data-template-id", tpl.ID)
		p.raw(`><header class="card__header"><h2>`)
		p.text(tpl.Title)
		p.raw(`</h2><a class="btn btn--ghost btn--sm"`)
		closeURL := v.CloseURL
		if closeURL == "" {
			closeURL = "/templates"
		}
		p.href(closeURL)
		p.attr("aria-label", t("templates.preview.close"))
		p.raw(`>&times;</a></header><p>`)
		p.text(tpl.Description)
		p.raw(`</p><dl class="meta">`)
		writeMeta(p, t("templates.preview.category"), categoryLabel(tpl.Category, t))
		writeMeta(p, t("templates.preview.language"), LanguageBadge(tpl.Language))
		writeMeta(p, t("templates.preview.rating"), strconv.FormatFloat(tpl.Rating, 'f', 1, 64))
		writeMeta(p, t("templates.preview.downloads"), format.Number(float64(tpl.Downloads), 0, v.Lang))
		p.raw(`</dl><ul class="tags">`)
		for _, tag := range tpl.Tags {
			p.raw(`<li class="badge badge--outline">`)
			p.text(tag)
			p.raw(`</li>`)
		}
		p.raw(`</ul><a class="btn btn--primary"`)
		p.href("/chat?q=" + url.QueryEscape(tpl.Title))
		p.raw(`>`)
		p.text(t("templates.preview.ask"))
		p.raw(`</a></aside>`)
	})
}

// EmptyPreview is the placeholder the preview slot starts with.
func EmptyPreview() templ.Component {
	return component(func(p *htmlWriter) {
		p.raw(`<aside class="template-preview" hidden`)
		p.attr("id", TemplatePreviewID)
		p.raw(`></aside>`)
	})
}

func writeMeta(p *htmlWriter, term, value string) {
	p.raw(`<dt>`)
	p.text(term)
	p.raw(`</dt><dd>`)
	p.text(value)
	p.raw(`</dd>`)
}
