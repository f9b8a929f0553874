package main

import (
	"net/http"
	"net/url"

	mw "nyaysathi.in/web/internal/middleware"
	"nyaysathi.in/web/internal/nav"
	"nyaysathi.in/web/internal/views"
)

// menuToggle opens or closes the mobile menu. Without htmx the visitor returns to the
// page the form was posted from.
func (a *app) menuToggle(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	m := nav.Menu{Open: sess.MenuOpen}
	m.Toggle()
	sess.MenuOpen = m.Open
	sess.MarkDirty()

	next := nav.SafeTarget(r.PostFormValue("next"))
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	current := next
	if u, err := url.Parse(next); err == nil {
		current = u.Path
	}
	lang := mw.Lang(r)
	a.views.fragment(w, r, http.StatusOK, views.Menu(views.MenuView{
		Open:      m.Open,
		Items:     nav.Build(current),
		CSRFToken: sess.CSRFToken,
		Next:      next,
		T:         a.translator(lang),
	}))
}

// menuClose shuts the menu and follows the link that was clicked inside it.
func (a *app) menuClose(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	m := nav.Menu{Open: sess.MenuOpen}
	m.Close()
	if sess.MenuOpen != m.Open {
		sess.MenuOpen = m.Open
		sess.MarkDirty()
	}
	http.Redirect(w, r, nav.SafeTarget(r.URL.Query().Get("next")), http.StatusSeeOther)
}
