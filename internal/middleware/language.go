package middleware

import (
	"context"
	"net/http"

	"edusite/internal/i18n"
)

const languageContextKey = contextKey("language")

// Language extracts the requested display language from the "language"
// query parameter and stores the normalized code in the request
// context. A missing or malformed value behaves as a request for the
// canonical language, so downstream resolution never has to guess.
func Language(canonical string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := i18n.NormalizeLanguage(r.URL.Query().Get("language"), canonical)
			ctx := context.WithValue(r.Context(), languageContextKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLanguage returns the normalized request language, falling back to
// the given canonical code when the middleware did not run.
func GetLanguage(ctx context.Context, canonical string) string {
	if lang, ok := ctx.Value(languageContextKey).(string); ok && lang != "" {
		return lang
	}
	return canonical
}
