package main

import (
	"net/http"

	"go.uber.org/zap"

	"nyaysathi.in/web/internal/content"
	"nyaysathi.in/web/internal/dashboard"
	handlersPkg "nyaysathi.in/web/internal/handlers"
	mw "nyaysathi.in/web/internal/middleware"
	"nyaysathi.in/web/internal/nav"
	"nyaysathi.in/web/internal/observability"
	"nyaysathi.in/web/internal/seo"
	"nyaysathi.in/web/internal/views"
)

const recentActivityLimit = 4

// translator binds the bundle to lang for templ fragments.
func (a *app) translator(lang string) views.Translator {
	return func(key string) string { return a.bundle.T(lang, key) }
}

// pageData fills the layout fields every page shares: navigation, the mobile menu and
// head metadata.
func (a *app) pageData(r *http.Request, titleKey, descKey string) handlersPkg.PageData {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	path := r.URL.Path

	items := nav.Build(path)
	menu, err := views.Embed(r.Context(), views.Menu(views.MenuView{
		Open:      sess.MenuOpen,
		Items:     items,
		CSRFToken: sess.CSRFToken,
		Next:      r.URL.RequestURI(),
		T:         a.translator(lang),
	}))
	if err != nil {
		observability.FromContext(r.Context()).Warn("menu render failed", zap.Error(err))
	}

	title := a.bundle.T(lang, titleKey)
	brand := a.bundle.T(lang, "brand.name")
	vm := handlersPkg.PageData{
		Title:       title,
		Lang:        lang,
		Analytics:   handlersPkg.AnalyticsFromConfig(a.cfg.Analytics),
		CSRFToken:   sess.CSRFToken,
		DevMode:     a.cfg.Web.DevMode,
		Path:        path,
		Nav:         items,
		Breadcrumbs: nav.Breadcrumbs(path),
		Menu:        menu,
	}

	base := baseURL(r, a.sessions.Secure())
	vm.SEO.Title = title + " | " + brand
	vm.SEO.Description = a.bundle.T(lang, descKey)
	vm.SEO.Canonical = base + path
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = brand
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Description = vm.SEO.Description
	vm.SEO.OG.Type = "website"
	vm.SEO.OG.Image = base + "/assets/img/hero-legal-ai.svg"
	vm.SEO.Twitter.Card = "summary_large_image"
	vm.SEO.Alternates = handlersPkg.Alternates(base, path, a.bundle.Supported())
	if len(vm.Breadcrumbs) > 1 {
		crumbs := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
		for _, c := range vm.Breadcrumbs {
			name := c.Label
			if c.LabelKey != "" {
				name = a.bundle.T(lang, c.LabelKey)
			}
			crumbs = append(crumbs, seo.BreadcrumbItem{Name: name, Item: base + c.Href})
		}
		vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.BreadcrumbList(crumbs)))
	}
	return vm
}

func baseURL(r *http.Request, secure bool) string {
	scheme := "http"
	if secure || r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (a *app) landingPage(w http.ResponseWriter, r *http.Request) {
	vm := a.pageData(r, "landing.title", "landing.description")
	vm.Landing = a.content.Landing(vm.Lang)

	base := baseURL(r, a.sessions.Secure())
	brand := a.bundle.T(vm.Lang, "brand.name")
	vm.SEO.JSONLD = append(vm.SEO.JSONLD,
		seo.JSON(seo.Organization(brand, base, base+"/assets/img/hero-legal-ai.svg")),
		seo.JSON(seo.WebSite(brand, base, base+"/templates?q=")),
	)
	a.views.page(w, r, "landing", http.StatusOK, vm)
}

func (a *app) toolsPage(w http.ResponseWriter, r *http.Request) {
	vm := a.pageData(r, "tools.title", "tools.description")
	vm.Tools = a.content.Tools(vm.Lang)
	a.views.page(w, r, "tools", http.StatusOK, vm)
}

// dashboardView is the firm dashboard payload.
type dashboardView struct {
	KPIs       []dashboard.KPI
	Activity   []dashboard.ActivityItem
	Actions    []dashboard.QuickAction
	Components []dashboard.Component
}

func (a *app) dashboardPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	vm := a.pageData(r, "dashboard.title", "dashboard.description")

	var view dashboardView
	var err error
	if view.KPIs, err = a.dashboard.FetchKPIs(ctx); err != nil {
		logger.Warn("dashboard kpis unavailable", zap.Error(err))
	}
	if view.Activity, err = a.dashboard.FetchActivity(ctx, recentActivityLimit); err != nil {
		logger.Warn("dashboard activity unavailable", zap.Error(err))
	}
	if view.Actions, err = a.dashboard.FetchQuickActions(ctx); err != nil {
		logger.Warn("dashboard quick actions unavailable", zap.Error(err))
	}
	if view.Components, err = a.dashboard.FetchSystemStatus(ctx); err != nil {
		logger.Warn("dashboard status unavailable", zap.Error(err))
	}
	vm.Dashboard = view
	a.views.page(w, r, "dashboard", http.StatusOK, vm)
}

func (a *app) helpPage(w http.ResponseWriter, r *http.Request) {
	vm := a.pageData(r, "help.title", "help.description")
	acc := content.ParseAccordion(r.URL.Query().Get("faq"), a.content.FAQCount())
	help := a.content.Help(vm.Lang, acc)
	vm.Help = help

	qa := make([]seo.QA, 0, len(help.FAQs))
	for _, f := range help.FAQs {
		qa = append(qa, seo.QA{Question: f.Question, Answer: f.AnswerText})
	}
	vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.FAQPage(qa)))
	a.views.page(w, r, "help", http.StatusOK, vm)
}
