package media

import (
	"context"
	"database/sql"
	"errors"

	"github.com/asubedi/media-convert-go/internal/logger"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

type deleteMediaSrv struct {
	repo      port.MediaRepository
	cache     port.Cache
	uploads   port.Storage
	processed port.Storage
}

// compile-time check: *deleteMediaSrv must satisfy port.MediaDeleter
var _ port.MediaDeleter = (*deleteMediaSrv)(nil)

// NewMediaDeleter constructs a port.MediaDeleter implementation.
func NewMediaDeleter(repo port.MediaRepository, cache port.Cache, uploads, processed port.Storage) port.MediaDeleter {
	return &deleteMediaSrv{repo: repo, cache: cache, uploads: uploads, processed: processed}
}

// DeleteMedia removes both backing files, deletes the record and clears the
// cache. A file that is already absent is not an error, and a failed file
// removal is logged but does not keep the record alive.
func (s *deleteMediaSrv) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMediaNotFound
		}
		return err
	}

	if err := s.uploads.RemoveFile(ctx, rec.SourceKey); err != nil && !errors.Is(err, ErrObjectNotFound) {
		logger.Warnf(ctx, "failed to remove source %q: %v", rec.SourceKey, err)
	}
	if rec.ProcessedKey != nil && *rec.ProcessedKey != "" {
		if err := s.processed.RemoveFile(ctx, *rec.ProcessedKey); err != nil && !errors.Is(err, ErrObjectNotFound) {
			logger.Warnf(ctx, "failed to remove artifact %q: %v", *rec.ProcessedKey, err)
		}
	}

	if err := s.repo.Delete(ctx, rec.ID); err != nil {
		return err
	}

	if err := s.cache.DeleteMediaDetails(ctx, rec.ID); err != nil {
		logger.Warnf(ctx, "failed deleting cache for media #%s: %v", rec.ID, err)
	}
	if err := s.cache.DeleteEtagMediaDetails(ctx, rec.ID); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for media #%s: %v", rec.ID, err)
	}

	return nil
}
