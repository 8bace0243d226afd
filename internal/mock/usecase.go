package mock

import (
	"context"

	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

// MediaProcessor is a hand-rolled port.MediaProcessor for unit tests.
type MediaProcessor struct {
	Out *model.MediaRecord
	Err error

	Called bool
	In     port.ProcessMediaInput
}

var _ port.MediaProcessor = (*MediaProcessor)(nil)

func (m *MediaProcessor) ProcessMedia(ctx context.Context, in port.ProcessMediaInput) (*model.MediaRecord, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// MediaUploader is a hand-rolled port.MediaUploader for unit tests.
type MediaUploader struct {
	Out *model.MediaRecord
	Err error

	Called bool
	In     port.UploadMediaInput
}

var _ port.MediaUploader = (*MediaUploader)(nil)

func (m *MediaUploader) UploadMedia(ctx context.Context, in port.UploadMediaInput) (*model.MediaRecord, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// MediaGetter is a hand-rolled port.MediaGetter for unit tests.
type MediaGetter struct {
	Out *model.MediaRecord
	Err error

	Called bool
}

var _ port.MediaGetter = (*MediaGetter)(nil)

func (m *MediaGetter) GetMedia(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error) {
	m.Called = true
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// MediaLister is a hand-rolled port.MediaLister for unit tests.
type MediaLister struct {
	Out []model.MediaRecord
	Err error

	Called bool
}

var _ port.MediaLister = (*MediaLister)(nil)

func (m *MediaLister) ListMedia(ctx context.Context) ([]model.MediaRecord, error) {
	m.Called = true
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// MediaDownloader is a hand-rolled port.MediaDownloader for unit tests.
type MediaDownloader struct {
	Out *port.DownloadMediaOutput
	Err error

	Called bool
}

var _ port.MediaDownloader = (*MediaDownloader)(nil)

func (m *MediaDownloader) DownloadMedia(ctx context.Context, id uuid.UUID) (*port.DownloadMediaOutput, error) {
	m.Called = true
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// MediaDeleter is a hand-rolled port.MediaDeleter for unit tests.
type MediaDeleter struct {
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.MediaDeleter = (*MediaDeleter)(nil)

func (m *MediaDeleter) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}
