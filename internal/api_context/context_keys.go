package api_context

import (
	"context"

	"github.com/asubedi/media-convert-go/internal/uuid"
)

type ctxKey string

const (
	IDKey        ctxKey = "id"
	RequestIDKey ctxKey = "requestID"
)

func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(IDKey).(uuid.UUID)
	return id, ok
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	rid, ok := ctx.Value(RequestIDKey).(string)
	return rid, ok
}
