package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type languageContextKey struct{}

// LanguageKey stores the negotiated output language in the request context.
var LanguageKey = languageContextKey{}

// Languages the generator produces natively. Everything else negotiates down
// to English.
var supportedLanguages = []language.Tag{
	language.English,
	language.German,
	language.Spanish,
	language.French,
	language.Italian,
	language.Portuguese,
	language.Indonesian,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// Language negotiates the default output language for a request from the
// X-Locale override and the Accept-Language header. Explicit language fields
// in request bodies still win over this.
func Language(fallback string) func(http.Handler) http.Handler {
	if fallback == "" {
		fallback = "en"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			negotiated := negotiateLanguage(r.Header.Get("X-Locale"), r.Header.Get("Accept-Language"), fallback)
			ctx := context.WithValue(r.Context(), LanguageKey, negotiated)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func negotiateLanguage(override, acceptLanguage, fallback string) string {
	if override == "" && acceptLanguage == "" {
		return fallback
	}
	tag, _ := language.MatchStrings(languageMatcher, override, acceptLanguage)
	base, _ := tag.Base()
	return base.String()
}

// LanguageFromContext returns the negotiated language, defaulting to English.
func LanguageFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LanguageKey).(string); ok && v != "" {
		return v
	}
	return "en"
}
