package mock

import (
	"context"

	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

// TaskDispatcher is a hand-rolled port.TaskDispatcher for unit tests.
type TaskDispatcher struct {
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.TaskDispatcher = (*TaskDispatcher)(nil)

func (m *TaskDispatcher) EnqueueProcessMedia(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}
