package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
	mediaService "github.com/asubedi/media-convert-go/internal/usecase/media"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

type MediaRepository struct {
	db *sql.DB
}

// compile-time check: *MediaRepository must satisfy port.MediaRepository
var _ port.MediaRepository = (*MediaRepository)(nil)

func NewMediaRepository(db *sql.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(ctx context.Context, rec *model.MediaRecord) error {
	log.Printf("creating database record for media #%s, at status %q...", rec.ID, rec.Status)

	const query = `
      INSERT INTO media_files
        (id, source_key, original_filename, file_type, source_language, target_language, processed_key, size_bytes, status, error_message)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.SourceKey, rec.OriginalFilename,
		rec.FileType, rec.SourceLanguage, rec.TargetLanguage,
		rec.ProcessedKey, rec.SizeBytes, rec.Status, rec.ErrorMessage,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *MediaRepository) Update(ctx context.Context, rec *model.MediaRecord) error {
	log.Printf("updating database record for media #%s, with status %q...", rec.ID, rec.Status)

	const query = `
      UPDATE media_files
      SET
        processed_key   = ?,
        size_bytes      = ?,
        status          = ?,
        error_message   = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		rec.ProcessedKey,
		rec.SizeBytes,
		rec.Status,
		rec.ErrorMessage,
		rec.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *MediaRepository) GetByID(ctx context.Context, ID uuid.UUID) (*model.MediaRecord, error) {
	log.Printf("fetching media #%s from the database...", ID)

	const query = `
      SELECT id, source_key, original_filename, file_type, source_language, target_language, processed_key, size_bytes, status, error_message, created_at, updated_at
      FROM media_files
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var rec model.MediaRecord
	if err := row.Scan(
		&rec.ID, &rec.SourceKey, &rec.OriginalFilename,
		&rec.FileType, &rec.SourceLanguage, &rec.TargetLanguage,
		&rec.ProcessedKey, &rec.SizeBytes, &rec.Status,
		&rec.ErrorMessage, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *MediaRepository) Delete(ctx context.Context, ID uuid.UUID) error {
	log.Printf("deleting database record for media #%s...", ID)

	const query = `DELETE FROM media_files WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, ID)
	if err != nil {
		return err
	}

	return nil
}

func (r *MediaRepository) List(ctx context.Context) ([]model.MediaRecord, error) {
	log.Println("listing media records from the database...")

	const query = `
      SELECT id, source_key, original_filename, file_type, source_language, target_language, processed_key, size_bytes, status, error_message, created_at, updated_at
      FROM media_files
      ORDER BY created_at DESC, id DESC
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.MediaRecord
	for rows.Next() {
		var rec model.MediaRecord
		if err := rows.Scan(
			&rec.ID, &rec.SourceKey, &rec.OriginalFilename,
			&rec.FileType, &rec.SourceLanguage, &rec.TargetLanguage,
			&rec.ProcessedKey, &rec.SizeBytes, &rec.Status,
			&rec.ErrorMessage, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// ClaimStatus flips the status only if the stored value still matches from.
// A zero rows-affected result means another writer got there first.
func (r *MediaRepository) ClaimStatus(ctx context.Context, ID uuid.UUID, from, to model.MediaStatus) error {
	log.Printf("claiming media #%s for status %q -> %q...", ID, from, to)

	const query = `UPDATE media_files SET status = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query, to, ID, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mediaService.ErrStatusConflict
	}

	return nil
}
