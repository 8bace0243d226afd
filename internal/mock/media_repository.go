package mock

import (
	"context"

	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

// MediaRepository is a hand-rolled port.MediaRepository for unit tests.
type MediaRepository struct {
	Record  *model.MediaRecord
	Records []model.MediaRecord

	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
	ListErr   error
	ClaimErr  error

	GetCalled    bool
	Created      *model.MediaRecord
	Updated      *model.MediaRecord
	DeleteCalled bool
	DeletedID    uuid.UUID
	ListCalled   bool
	ClaimCalled  bool
	ClaimFrom    model.MediaStatus
	ClaimTo      model.MediaStatus
}

var _ port.MediaRepository = (*MediaRepository)(nil)

func (m *MediaRepository) Create(ctx context.Context, rec *model.MediaRecord) error {
	m.Created = rec
	return m.CreateErr
}

func (m *MediaRepository) Update(ctx context.Context, rec *model.MediaRecord) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	cp := *rec
	m.Updated = &cp
	return nil
}

func (m *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Record, nil
}

func (m *MediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

func (m *MediaRepository) List(ctx context.Context) ([]model.MediaRecord, error) {
	m.ListCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Records, nil
}

func (m *MediaRepository) ClaimStatus(ctx context.Context, id uuid.UUID, from, to model.MediaStatus) error {
	m.ClaimCalled = true
	m.ClaimFrom = from
	m.ClaimTo = to
	if m.ClaimErr != nil {
		return m.ClaimErr
	}
	if m.Record != nil {
		m.Record.Status = to
	}
	return nil
}
