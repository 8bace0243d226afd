package media

import (
	"context"

	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
)

type mediaListerSrv struct {
	repo port.MediaRepository
}

// compile-time check: *mediaListerSrv must satisfy port.MediaLister
var _ port.MediaLister = (*mediaListerSrv)(nil)

func NewMediaLister(repo port.MediaRepository) port.MediaLister {
	return &mediaListerSrv{repo: repo}
}

// ListMedia returns all records ordered by creation time descending; the
// ordering is enforced by the repository query.
func (s *mediaListerSrv) ListMedia(ctx context.Context) ([]model.MediaRecord, error) {
	return s.repo.List(ctx)
}
