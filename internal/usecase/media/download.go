package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"

	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

type downloadSrv struct {
	repo      port.MediaRepository
	processed port.Storage
}

// compile-time check: *downloadSrv must satisfy port.MediaDownloader
var _ port.MediaDownloader = (*downloadSrv)(nil)

func NewMediaDownloader(repo port.MediaRepository, processed port.Storage) port.MediaDownloader {
	return &downloadSrv{repo: repo, processed: processed}
}

// DownloadMedia streams the processed artifact of a record. It fails with
// ErrMediaNotFound when the record has no artifact or the backing file is
// missing from storage.
func (s *downloadSrv) DownloadMedia(ctx context.Context, id uuid.UUID) (*port.DownloadMediaOutput, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	if rec.ProcessedKey == nil || *rec.ProcessedKey == "" {
		return nil, fmt.Errorf("%w: no processed file for media #%s", ErrMediaNotFound, rec.ID)
	}
	key := *rec.ProcessedKey

	info, err := s.processed.StatFile(ctx, key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: artifact %q is missing from storage", ErrMediaNotFound, key)
		}
		return nil, err
	}

	file, err := s.processed.GetFile(ctx, key)
	if err != nil {
		return nil, err
	}

	return &port.DownloadMediaOutput{
		Reader:      file,
		Filename:    path.Base(key),
		ContentType: ContentTypeForKey(key),
		SizeBytes:   info.SizeBytes,
	}, nil
}
