package media

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/asubedi/media-convert-go/internal/logger"
	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
)

type uploadSrv struct {
	repo       port.MediaRepository
	uploads    port.Storage
	processor  port.MediaProcessor
	dispatcher port.TaskDispatcher
	genUUID    port.UUIDGen
}

// compile-time check: *uploadSrv must satisfy port.MediaUploader
var _ port.MediaUploader = (*uploadSrv)(nil)

// NewMediaUploader constructs the upload gateway. Text records are processed
// synchronously through processor; audio/video records are enqueued on
// dispatcher and otherwise wait for an explicit process request.
func NewMediaUploader(repo port.MediaRepository, uploads port.Storage, processor port.MediaProcessor, dispatcher port.TaskDispatcher, genUUID port.UUIDGen) port.MediaUploader {
	return &uploadSrv{repo: repo, uploads: uploads, processor: processor, dispatcher: dispatcher, genUUID: genUUID}
}

func (s *uploadSrv) UploadMedia(ctx context.Context, in port.UploadMediaInput) (*model.MediaRecord, error) {
	if in.SizeBytes <= 0 {
		return nil, fmt.Errorf("invalid file size %d", in.SizeBytes)
	}
	if in.SizeBytes > MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, in.SizeBytes, MaxUploadSize)
	}
	if _, err := model.ParseFileType(string(in.FileType)); err != nil {
		return nil, err
	}
	srcLang := defaultLanguage(in.SourceLanguage)
	tgtLang := defaultLanguage(in.TargetLanguage)
	if !IsLanguageAllowed(srcLang) {
		return nil, fmt.Errorf("unsupported source language %q", srcLang)
	}
	if !IsLanguageAllowed(tgtLang) {
		return nil, fmt.Errorf("unsupported target language %q", tgtLang)
	}

	id := s.genUUID()
	sourceKey := id.String() + path.Ext(in.Filename)

	if err := s.uploads.SaveFile(ctx, sourceKey, in.Reader, in.SizeBytes, nil); err != nil {
		return nil, fmt.Errorf("save file %q failed: %w", sourceKey, err)
	}

	now := time.Now().UTC()
	rec := &model.MediaRecord{
		ID:               id,
		SourceKey:        sourceKey,
		OriginalFilename: in.Filename,
		FileType:         in.FileType,
		SourceLanguage:   srcLang,
		TargetLanguage:   tgtLang,
		SizeBytes:        in.SizeBytes,
		Status:           model.MediaStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		// record creation failed: don't leave an orphaned upload behind
		if rmErr := s.uploads.RemoveFile(ctx, sourceKey); rmErr != nil {
			logger.Warnf(ctx, "cleanup of file %q after failed create: %v", sourceKey, rmErr)
		}
		return nil, fmt.Errorf("create record for file %q failed: %w", sourceKey, err)
	}

	// Text-to-speech is assumed fast, so text records are processed before
	// returning. Other kinds wait for the worker or an explicit request.
	if rec.FileType == model.FileTypeText {
		return s.processor.ProcessMedia(ctx, port.ProcessMediaInput{ID: rec.ID})
	}

	if err := s.dispatcher.EnqueueProcessMedia(ctx, rec.ID); err != nil {
		logger.Warnf(ctx, "could not enqueue processing for media #%s: %v", rec.ID, err)
	}

	return rec, nil
}

func defaultLanguage(lang string) string {
	if lang == "" {
		return "en"
	}
	return lang
}
