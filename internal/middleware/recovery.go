package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"review-analyzer/internal/services/review"

	"github.com/rs/zerolog/log"
)

// Recovery converts panics in handlers into logged 500 responses.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Str("url", r.URL.String()).
					Str("method", r.Method).
					Msg("Panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				resp := review.NewErrorResponse(review.ErrCodeInternal, "Internal server error")
				if err := json.NewEncoder(w).Encode(resp); err != nil {
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(w, r)
	})
}
