package mock

import (
	"context"
	"time"

	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

// Cache is a hand-rolled port.Cache for unit tests.
type Cache struct {
	MediaOut  []byte
	EtagMedia string

	GetMediaErr error
	DelErr      error

	SetMediaCalled     bool
	SetEtagMediaCalled bool
	DelMediaCalled     bool
	DelEtagMediaCalled bool
}

var _ port.Cache = (*Cache)(nil)

func (c *Cache) GetMediaDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if c.GetMediaErr != nil {
		return nil, c.GetMediaErr
	}
	return c.MediaOut, nil
}

func (c *Cache) GetEtagMediaDetails(ctx context.Context, id uuid.UUID) (string, error) {
	return c.EtagMedia, nil
}

func (c *Cache) SetMediaDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	c.SetMediaCalled = true
	c.MediaOut = data
}

func (c *Cache) SetEtagMediaDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
	c.SetEtagMediaCalled = true
	c.EtagMedia = etag
}

func (c *Cache) DeleteMediaDetails(ctx context.Context, id uuid.UUID) error {
	c.DelMediaCalled = true
	return c.DelErr
}

func (c *Cache) DeleteEtagMediaDetails(ctx context.Context, id uuid.UUID) error {
	c.DelEtagMediaCalled = true
	return c.DelErr
}
