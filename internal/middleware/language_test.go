package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNegotiateLanguage(t *testing.T) {
	tests := []struct {
		name           string
		override       string
		acceptLanguage string
		want           string
	}{
		{
			name:     "x-locale overrides",
			override: "de",
			want:     "de",
		},
		{
			name:           "accept-language used",
			acceptLanguage: "fr-FR,fr;q=0.9,en;q=0.8",
			want:           "fr",
		},
		{
			name:           "regional variant reduces to base",
			acceptLanguage: "pt-BR",
			want:           "pt",
		},
		{
			name:           "unsupported negotiates to english",
			acceptLanguage: "ja-JP",
			want:           "en",
		},
		{
			name: "no headers falls back",
			want: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := negotiateLanguage(tt.override, tt.acceptLanguage, "en")
			if got != tt.want {
				t.Fatalf("negotiateLanguage(%q, %q) = %q, want %q", tt.override, tt.acceptLanguage, got, tt.want)
			}
		})
	}
}

func TestLanguageMiddlewareStashesContext(t *testing.T) {
	var got string
	handler := Language("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LanguageFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if got != "de" {
		t.Fatalf("context language = %q, want de", got)
	}
}

func TestLanguageFromContextDefault(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := LanguageFromContext(r.Context()); got != "en" {
		t.Fatalf("default language = %q, want en", got)
	}
}
