package main

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"nyaysathi.in/web/internal/catalog"
	mw "nyaysathi.in/web/internal/middleware"
	"nyaysathi.in/web/internal/observability"
	"nyaysathi.in/web/internal/views"
)

var tracer = otel.Tracer("nyaysathi.in/web/cmd/web")

// templatesPageView is the templates page payload.
type templatesPageView struct {
	Query    string
	Category catalog.Category
	Results  template.HTML
	Preview  template.HTML
}

func (a *app) catalogView(r *http.Request) views.CatalogView {
	q := r.URL.Query()
	term := q.Get("q")
	category := catalog.CategoryOrAll(q.Get("category"))
	lang := mw.Lang(r)

	_, span := tracer.Start(r.Context(), "catalog.Search")
	results := a.catalog.Search(term, category)
	span.End()

	return views.CatalogView{
		Query:    term,
		Category: category,
		Counts:   a.catalog.Counts(),
		Results:  results,
		Lang:     lang,
		T:        a.translator(lang),
	}
}

func (a *app) templatesPage(w http.ResponseWriter, r *http.Request) {
	a.renderTemplatesPage(w, r, views.EmptyPreview())
}

func (a *app) renderTemplatesPage(w http.ResponseWriter, r *http.Request, preview templ.Component) {
	vm := a.pageData(r, "templates.title", "templates.description")
	cv := a.catalogView(r)
	results, err := views.Embed(r.Context(), views.TemplateResults(cv))
	if err == nil {
		var slot template.HTML
		slot, err = views.Embed(r.Context(), preview)
		vm.Templates = templatesPageView{Query: cv.Query, Category: cv.Category, Results: results, Preview: slot}
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("templates render failed", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "render error")
		return
	}
	a.views.page(w, r, "templates", http.StatusOK, vm)
}

// templateResults answers the live search and category tabs. The address bar follows
// the filter so the state survives a reload.
func (a *app) templateResults(w http.ResponseWriter, r *http.Request) {
	cv := a.catalogView(r)
	target := views.CatalogURL("/templates", cv.Query, cv.Category)
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	mw.HXPushURL(w, target)
	a.views.fragment(w, r, http.StatusOK, views.TemplateResults(cv))
}

func (a *app) templatePreview(w http.ResponseWriter, r *http.Request) {
	tpl, err := a.catalog.ByID(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		mw.WriteError(w, r, http.StatusNotFound, "template not found")
		return
	}
	if err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "lookup failed")
		return
	}
	lang := mw.Lang(r)
	q := r.URL.Query()
	preview := views.TemplatePreview(views.PreviewView{
		Template: tpl,
		Lang:     lang,
		T:        a.translator(lang),
		CloseURL: views.CatalogURL("/templates", q.Get("q"), catalog.CategoryOrAll(q.Get("category"))),
	})
	if mw.IsHTMX(r.Context()) {
		a.views.fragment(w, r, http.StatusOK, preview)
		return
	}
	a.renderTemplatesPage(w, r, preview)
}
