package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/diewo77/go-blogs/i18n"
)

var validToken = strings.Repeat("a", 43)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "h") }), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Join(order, ",") != "a,b,h" {
		t.Fatalf("order = %v", order)
	}
}

func TestCSRF(t *testing.T) {
	var seen string
	h := CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CSRFToken(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	// GET issues a token cookie and exposes it to templates
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != csrfCookieName || cookies[0].Value != seen || len(seen) != 43 {
		t.Fatalf("unexpected token issue: %v %q", cookies, seen)
	}

	post := func(cookie, field string) int {
		req := httptest.NewRequest(http.MethodPost, "/news", strings.NewReader(url.Values{"csrf_token": {field}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: cookie})
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	if code := post(validToken, validToken); code != http.StatusNoContent {
		t.Errorf("matching token: %d", code)
	}
	if code := post(validToken, strings.Repeat("b", 43)); code != http.StatusForbidden {
		t.Errorf("mismatch: %d", code)
	}
	if code := post("", validToken); code != http.StatusForbidden {
		t.Errorf("missing cookie: %d", code)
	}

	req := httptest.NewRequest(http.MethodPost, "/news", nil)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: validToken})
	req.Header.Set(csrfHeader, validToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("header token: %d", rec.Code)
	}
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get(requestIDHeader) != seen || rec.Code != http.StatusTeapot {
		t.Fatalf("request id %q header %q code %d", seen, rec.Header().Get(requestIDHeader), rec.Code)
	}

	const given = "0b6f4c1e-8a57-4b55-9d4f-3f2d3f6b9d10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, given)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != given {
		t.Fatalf("incoming id not kept: %q", seen)
	}
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestPreferences(t *testing.T) {
	var lang string
	h := Preferences(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang = i18n.LangFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		query  string
		cookie string
		accept string
		want   string
	}{
		{"default", "", "", "", "ru"},
		{"accept", "", "", "en-US,en;q=0.9", "en"},
		{"cookie", "", "en", "ru", "en"},
		{"query", "?lang=en", "ru", "ru", "en"},
		{"unsupported query", "?lang=de", "", "", "ru"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		if tt.cookie != "" {
			req.AddCookie(&http.Cookie{Name: langCookieName, Value: tt.cookie})
		}
		if tt.accept != "" {
			req.Header.Set("Accept-Language", tt.accept)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if lang != tt.want {
			t.Errorf("%s: lang = %q, want %q", tt.name, lang, tt.want)
		}
		if tt.query == "?lang=en" && len(rec.Result().Cookies()) != 1 {
			t.Errorf("%s: lang cookie not set", tt.name)
		}
	}
}
