package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asubedi/media-convert-go/internal/api_context"
)

func TestWithRequestID(t *testing.T) {
	var gotRID string
	h := WithRequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRID, _ = api_context.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("generates an id when none is sent", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/files", nil))

		if gotRID == "" {
			t.Fatal("expected a generated request id in context")
		}
		if rr.Header().Get("X-Request-ID") != gotRID {
			t.Errorf("header/context mismatch: %q vs %q", rr.Header().Get("X-Request-ID"), gotRID)
		}
	})

	t.Run("honours the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/files", nil)
		req.Header.Set("X-Request-ID", "caller-id")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if gotRID != "caller-id" {
			t.Errorf("context request id: got %q", gotRID)
		}
		if rr.Header().Get("X-Request-ID") != "caller-id" {
			t.Errorf("response header: got %q", rr.Header().Get("X-Request-ID"))
		}
	})
}
