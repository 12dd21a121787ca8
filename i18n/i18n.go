// Package i18n holds the UI message catalogs (Russian and English) and language negotiation.
package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when nothing in the request selects a supported language.
const DefaultLang = "ru"

type langKey struct{}

var (
	supported = []language.Tag{language.Russian, language.English}
	matcher   = language.NewMatcher(supported)
)

// Supported lists the language codes that have a catalog.
func Supported() []string {
	out := make([]string, 0, len(supported))
	for _, t := range supported {
		out = append(out, t.String())
	}
	return out
}

// IsSupported reports whether lang has a catalog.
func IsSupported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// DetectLanguage picks the best supported language for an Accept-Language header value.
func DetectLanguage(accept string) string {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return DefaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return DefaultLang
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLang
	}
	return supported[idx].String()
}

// T translates code into lang, falling back to the default language and then to the code itself.
func T(lang, code string) string {
	if m, ok := catalogs[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalogs[DefaultLang][code]; ok {
		return s
	}
	return code
}

// WithLang returns a copy of ctx carrying the request language.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the request language, DefaultLang when unset.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}
