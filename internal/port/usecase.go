package port

import (
	"context"
	"io"

	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// MediaUploader stores an uploaded blob and creates its record.
type MediaUploader interface {
	UploadMedia(ctx context.Context, in UploadMediaInput) (*model.MediaRecord, error)
}
type UploadMediaInput struct {
	Filename       string
	FileType       model.FileType
	SourceLanguage string
	TargetLanguage string
	Reader         io.Reader
	SizeBytes      int64
}

// MediaProcessor runs the matching transformation provider for a record and
// manages its status transitions. Provider failures are recorded on the
// returned record, not surfaced as errors.
type MediaProcessor interface {
	ProcessMedia(ctx context.Context, in ProcessMediaInput) (*model.MediaRecord, error)
}
type ProcessMediaInput struct {
	ID uuid.UUID
	// Reprocess explicitly re-runs a failed record. Completed records are
	// never reprocessed.
	Reprocess bool
}

// MediaGetter retrieves one media record.
type MediaGetter interface {
	GetMedia(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error)
}

// MediaLister returns all records, most recent first.
type MediaLister interface {
	ListMedia(ctx context.Context) ([]model.MediaRecord, error)
}

// MediaDownloader streams the processed artifact of a record.
type MediaDownloader interface {
	DownloadMedia(ctx context.Context, id uuid.UUID) (*DownloadMediaOutput, error)
}
type DownloadMediaOutput struct {
	Reader      io.ReadCloser
	Filename    string
	ContentType string
	SizeBytes   int64
}

// MediaDeleter deletes a record and its backing files.
type MediaDeleter interface {
	DeleteMedia(ctx context.Context, id uuid.UUID) error
}
