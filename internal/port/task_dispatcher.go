package port

import (
	"context"

	"github.com/asubedi/media-convert-go/internal/uuid"
)

// TaskDispatcher enqueues asynchronous processing tasks for uploaded records.
type TaskDispatcher interface {
	EnqueueProcessMedia(ctx context.Context, id uuid.UUID) error
}
