package middleware

import (
	"context"
	"net/http"
	"strings"

	"nyaysathi.in/web/internal/i18n"
)

const localeCookieName = "hl"

// VaryLocale marks responses as varying on Accept-Language.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// Locale settles the UI language for the request. Precedence: ?hl= query, the
// session choice, the hl cookie, then Accept-Language. Only explicit choices (query or
// cookie) are stored in the session; an explicit ?hl= switch also sets the hl cookie.
// The negotiated Accept-Language value applies to the current request only.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r)
			explicit := supportedValue(bundle, sess.Locale)
			if q := supportedValue(bundle, r.URL.Query().Get("hl")); q != "" {
				explicit = q
				http.SetCookie(w, &http.Cookie{Name: localeCookieName, Value: q, Path: "/", SameSite: http.SameSiteLaxMode})
			} else if explicit == "" {
				explicit = supportedValue(bundle, cookieLocale(r))
			}
			if explicit != sess.Locale {
				sess.Locale = explicit
				sess.MarkDirty()
			}

			chosen := explicit
			if chosen == "" {
				chosen = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			w.Header().Set("Content-Language", chosen)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), localeKey{}, chosen)))
		})
	}
}

func supportedValue(bundle *i18n.Bundle, v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || !bundle.IsSupported(v) {
		return ""
	}
	return v
}

func cookieLocale(r *http.Request) string {
	if c, err := r.Cookie(localeCookieName); err == nil {
		return c.Value
	}
	return ""
}

// Lang returns the request's UI language: the locale settled by Locale, then the
// session choice, then "en".
func Lang(r *http.Request) string {
	if l, _ := r.Context().Value(localeKey{}).(string); l != "" {
		return l
	}
	if l := GetSession(r).Locale; l != "" {
		return l
	}
	return "en"
}
