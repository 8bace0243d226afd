package middleware

import (
	"context"
	"net/http"

	"github.com/asubedi/media-convert-go/internal/api_context"
	guuid "github.com/google/uuid"
)

// WithRequestID assigns each request a short id that the logger picks up from
// context, honouring an X-Request-ID header when the caller sends one.
func WithRequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get("X-Request-ID")
			if rid == "" {
				rid = guuid.NewString()
			}
			w.Header().Set("X-Request-ID", rid)

			ctx := context.WithValue(r.Context(), api_context.RequestIDKey, rid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
