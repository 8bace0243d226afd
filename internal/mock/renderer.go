package mock

import (
	"context"

	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

// HTTPRenderer is a hand-rolled port.HTTPRenderer for unit tests.
type HTTPRenderer struct {
	Raw  []byte
	Etag string
	Err  error

	Called bool
	ID     uuid.UUID
}

var _ port.HTTPRenderer = (*HTTPRenderer)(nil)

func (r *HTTPRenderer) RenderGetMedia(ctx context.Context, getter port.MediaGetter, id uuid.UUID) ([]byte, string, error) {
	r.Called = true
	r.ID = id
	if r.Err != nil {
		return nil, "", r.Err
	}
	return r.Raw, r.Etag, nil
}
