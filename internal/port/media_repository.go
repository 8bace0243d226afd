package port

import (
	"context"

	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

// MediaRepository defines persistence operations for media records.
type MediaRepository interface {
	Create(ctx context.Context, rec *model.MediaRecord) error
	Update(ctx context.Context, rec *model.MediaRecord) error
	GetByID(ctx context.Context, ID uuid.UUID) (*model.MediaRecord, error)
	Delete(ctx context.Context, ID uuid.UUID) error
	// List returns all records ordered by creation time, most recent first.
	List(ctx context.Context) ([]model.MediaRecord, error)
	// ClaimStatus performs a compare-and-swap on the record's status. It only
	// succeeds when the stored status still equals from, which makes it the
	// single-writer guard for the processing claim.
	ClaimStatus(ctx context.Context, ID uuid.UUID, from, to model.MediaStatus) error
}
