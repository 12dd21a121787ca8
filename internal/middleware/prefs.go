package middleware

import (
	"net/http"

	"github.com/diewo77/go-blogs/i18n"
)

const langCookieName = "lang"

// Preferences resolves the UI language: ?lang= (remembered in a cookie), then the
// cookie, then Accept-Language.
func Preferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if q := r.URL.Query().Get("lang"); i18n.IsSupported(q) {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     langCookieName,
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		} else if c, err := r.Cookie(langCookieName); err == nil && i18n.IsSupported(c.Value) {
			lang = c.Value
		} else {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}
