// Package middleware holds the request pipeline shared by every page: signed sessions,
// CSRF, locale negotiation, htmx detection and static assets.
package middleware

import (
	"context"
	"net/http"
)

type (
	sessionKey struct{}
	htmxKey    struct{}
	localeKey  struct{}
)

var ctxKeySession sessionKey

// HTMX records whether the request came from htmx so handlers can answer with
// fragments instead of full pages.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), r.Header.Get("HX-Request") == "true")))
	})
}

// WithHTMX returns ctx flagged as an htmx request or not.
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, htmxKey{}, is)
}

// IsHTMX reports whether ctx belongs to an htmx request.
func IsHTMX(ctx context.Context) bool {
	is, _ := ctx.Value(htmxKey{}).(bool)
	return is
}

// HXPushURL asks htmx to push url onto the browser history.
func HXPushURL(w http.ResponseWriter, url string) {
	w.Header().Set("HX-Push-Url", url)
}
