// Package view renders the HTML pages. Every page template is parsed together with
// layout.html and the partials, cached, and cloned per request to bind the
// request-scoped funcs (language, CSRF token).
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/diewo77/go-blogs/auth"
	"github.com/diewo77/go-blogs/i18n"
	"github.com/diewo77/go-blogs/internal/markdown"
	"github.com/diewo77/go-blogs/validation"
)

var (
	mu       sync.RWMutex
	files    fs.FS
	devMode  bool
	tplCache = map[string]*template.Template{}

	langResolver = func(r *http.Request) string { return i18n.LangFromContext(r.Context()) }
	csrfResolver = func(*http.Request) string { return "" }
)

// SetFS sets the template tree (layout.html, partials/, pages) and clears the cache.
func SetFS(f fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	files = f
	tplCache = map[string]*template.Template{}
}

// SetDev disables the template cache so edits show up on reload.
func SetDev(dev bool) {
	mu.Lock()
	defer mu.Unlock()
	devMode = dev
}

// SetCSRFResolver sets the callback that exposes the CSRF token to forms.
func SetCSRFResolver(f func(*http.Request) string) {
	if f != nil {
		csrfResolver = f
	}
}

// Funcs returns the func map bound to r. With a nil request it returns the parse-time stubs.
func Funcs(r *http.Request) template.FuncMap {
	lang := i18n.DefaultLang
	if r != nil {
		lang = langResolver(r)
	}
	return template.FuncMap{
		"t":        func(code string) string { return i18n.T(lang, code) },
		"lang":     func() string { return lang },
		"year":     func() int { return time.Now().Year() },
		"markdown": markdown.Render,
		"date":     formatDate,
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

func formatDate(v any) string {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return ""
		}
		return d.Format(validation.DateLayout)
	case *time.Time:
		if d == nil || d.IsZero() {
			return ""
		}
		return d.Format(validation.DateLayout)
	}
	return ""
}

func lookup(name string) (*template.Template, error) {
	mu.RLock()
	t, ok := tplCache[name]
	fsys, dev := files, devMode
	mu.RUnlock()
	if ok && !dev {
		return t, nil
	}
	if fsys == nil {
		return nil, fmt.Errorf("view: no template filesystem configured")
	}
	t, err := template.New("layout.html").Funcs(Funcs(nil)).
		ParseFS(fsys, "layout.html", "partials/*.html", name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if !dev {
		mu.Lock()
		tplCache[name] = t
		mu.Unlock()
	}
	return t, nil
}

// Render executes page name inside the layout and writes it with status 200.
// Nothing is written when rendering fails, so the caller can still answer 500.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	base, err := lookup(name)
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(Funcs(r))

	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		_, loggedIn := auth.UserIDFromContext(r.Context())
		data["IsLoggedIn"] = loggedIn
	}
	if _, exists := data["Errors"]; !exists {
		data["Errors"] = validation.Violations{}
	}
	data["CSRFToken"] = csrfResolver(r)
	data["Lang"] = langResolver(r)
	data["Path"] = r.URL.Path

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
