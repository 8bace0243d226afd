package media

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/asubedi/media-convert-go/internal/logger"
	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

type processSrv struct {
	repo      port.MediaRepository
	uploads   port.Storage
	processed port.Storage
	cache     port.Cache
	stt       port.SpeechToText
	tts       port.TextToSpeech
	extractor port.AudioExtractor
}

// compile-time check: *processSrv must satisfy port.MediaProcessor
var _ port.MediaProcessor = (*processSrv)(nil)

// NewMediaProcessor constructs the pipeline dispatcher. Provider selection is
// a pure function of the record's file type: audio runs speech-to-text, video
// runs audio extraction, text runs text-to-speech.
func NewMediaProcessor(repo port.MediaRepository, uploads, processed port.Storage, cache port.Cache, stt port.SpeechToText, tts port.TextToSpeech, extractor port.AudioExtractor) port.MediaProcessor {
	return &processSrv{
		repo:      repo,
		uploads:   uploads,
		processed: processed,
		cache:     cache,
		stt:       stt,
		tts:       tts,
		extractor: extractor,
	}
}

// ProcessMedia claims the record, runs the matching provider and commits the
// outcome. A provider failure never fails the call: the record comes back in
// failed status with its error message set.
func (s *processSrv) ProcessMedia(ctx context.Context, in port.ProcessMediaInput) (*model.MediaRecord, error) {
	rec, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}

	switch rec.Status {
	case model.MediaStatusProcessing:
		return nil, ErrStatusConflict
	case model.MediaStatusCompleted:
		return nil, ErrTerminalStatus
	case model.MediaStatusFailed:
		if !in.Reprocess {
			return nil, ErrTerminalStatus
		}
	}

	// Single writer per record: the claim only succeeds if the status is
	// still what we just read.
	if err := s.repo.ClaimStatus(ctx, rec.ID, rec.Status, model.MediaStatusProcessing); err != nil {
		return nil, err
	}
	rec.Status = model.MediaStatusProcessing
	rec.ErrorMessage = nil
	rec.ProcessedKey = nil

	logger.Infof(ctx, "processing media #%s (%s)...", rec.ID, rec.FileType)

	artifactKey, runErr := s.run(ctx, rec)
	if runErr != nil {
		return s.markFailed(ctx, rec, runErr)
	}

	rec.ProcessedKey = &artifactKey
	rec.Status = model.MediaStatusCompleted
	rec.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, rec); err != nil {
		// the artifact was written but the record commit failed: remove the
		// artifact so the completed⟺artifact-exists invariant holds
		if rmErr := s.processed.RemoveFile(ctx, artifactKey); rmErr != nil {
			logger.Warnf(ctx, "cleanup of artifact %q failed: %v", artifactKey, rmErr)
		}
		if _, mErr := s.markFailed(ctx, rec, fmt.Errorf("commit failed: %w", err)); mErr != nil {
			logger.Warnf(ctx, "could not mark media #%s as failed: %v", rec.ID, mErr)
		}
		return nil, fmt.Errorf("commit record for media #%s failed: %w", rec.ID, err)
	}

	s.invalidate(ctx, rec.ID)
	logger.Infof(ctx, "✅  media #%s processed into %q", rec.ID, artifactKey)
	return rec, nil
}

// run streams the source through the provider matching the file type and
// saves the artifact to the processed bucket, returning its key.
func (s *processSrv) run(ctx context.Context, rec *model.MediaRecord) (string, error) {
	src, err := s.uploads.GetFile(ctx, rec.SourceKey)
	if err != nil {
		return "", fmt.Errorf("read source %q: %w", rec.SourceKey, err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warnf(ctx, "failed to close source %q: %v", rec.SourceKey, err)
		}
	}()

	switch rec.FileType {
	case model.FileTypeAudio:
		text, err := s.stt.Transcribe(ctx, src, rec.SourceLanguage)
		if err != nil {
			return "", err
		}
		key := TranscriptKey(rec.ID)
		data := []byte(text)
		opts := map[string]string{"Content-Type": "text/plain; charset=utf-8"}
		if err := s.processed.SaveFile(ctx, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
			return "", fmt.Errorf("save transcript %q: %w", key, err)
		}
		return key, nil

	case model.FileTypeVideo:
		audio, err := s.extractor.Extract(ctx, src)
		if err != nil {
			return "", err
		}
		defer func() {
			if err := audio.Close(); err != nil {
				logger.Warnf(ctx, "failed to close extracted audio for media #%s: %v", rec.ID, err)
			}
		}()
		key := AudioKey(rec.ID)
		opts := map[string]string{"Content-Type": "audio/mpeg"}
		if err := s.processed.SaveFile(ctx, key, audio, -1, opts); err != nil {
			return "", fmt.Errorf("save extracted audio %q: %w", key, err)
		}
		return key, nil

	case model.FileTypeText:
		data, err := io.ReadAll(src)
		if err != nil {
			return "", fmt.Errorf("read text source %q: %w", rec.SourceKey, err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", fmt.Errorf("text source %q is empty", rec.SourceKey)
		}
		speech, err := s.tts.Synthesise(ctx, text, rec.TargetLanguage)
		if err != nil {
			return "", err
		}
		defer func() {
			if err := speech.Close(); err != nil {
				logger.Warnf(ctx, "failed to close synthesised audio for media #%s: %v", rec.ID, err)
			}
		}()
		key := AudioKey(rec.ID)
		opts := map[string]string{"Content-Type": "audio/mpeg"}
		if err := s.processed.SaveFile(ctx, key, speech, -1, opts); err != nil {
			return "", fmt.Errorf("save synthesised audio %q: %w", key, err)
		}
		return key, nil

	default:
		return "", fmt.Errorf("no provider for file type %q", rec.FileType)
	}
}

func (s *processSrv) markFailed(ctx context.Context, rec *model.MediaRecord, reason error) (*model.MediaRecord, error) {
	logger.Warnf(ctx, "media #%s failed: %v", rec.ID, reason)

	msg := reason.Error()
	rec.Status = model.MediaStatusFailed
	rec.ErrorMessage = &msg
	rec.ProcessedKey = nil
	rec.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("mark media #%s as failed: %w", rec.ID, err)
	}
	s.invalidate(ctx, rec.ID)
	return rec, nil
}

func (s *processSrv) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.DeleteMediaDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for media #%s: %v", id, err)
	}
	if err := s.cache.DeleteEtagMediaDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for media #%s: %v", id, err)
	}
}
