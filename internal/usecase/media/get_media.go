package media

import (
	"context"
	"database/sql"
	"errors"

	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

type mediaGetterSrv struct {
	repo port.MediaRepository
}

// compile-time check: *mediaGetterSrv must satisfy port.MediaGetter
var _ port.MediaGetter = (*mediaGetterSrv)(nil)

func NewMediaGetter(repo port.MediaRepository) port.MediaGetter {
	return &mediaGetterSrv{repo: repo}
}

func (s *mediaGetterSrv) GetMedia(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return rec, nil
}
