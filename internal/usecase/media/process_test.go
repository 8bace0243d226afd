package media

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/asubedi/media-convert-go/internal/mock"
	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
	guuid "github.com/google/uuid"
)

func testID() uuid.UUID {
	return uuid.UUID(guuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
}

func pendingRecord(ft model.FileType) *model.MediaRecord {
	return &model.MediaRecord{
		ID:             testID(),
		SourceKey:      "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee.dat",
		FileType:       ft,
		SourceLanguage: "en",
		TargetLanguage: "ne",
		Status:         model.MediaStatusPending,
	}
}

func newProcessor(repo *mock.MediaRepository, uploads, processed *mock.Storage, stt *mock.SpeechToText, tts *mock.TextToSpeech, ex *mock.AudioExtractor) port.MediaProcessor {
	return NewMediaProcessor(repo, uploads, processed, &mock.Cache{}, stt, tts, ex)
}

func TestProcessMedia_NotFound(t *testing.T) {
	repo := &mock.MediaRepository{GetErr: sql.ErrNoRows}
	svc := newProcessor(repo, &mock.Storage{}, &mock.Storage{}, &mock.SpeechToText{}, &mock.TextToSpeech{}, &mock.AudioExtractor{})

	_, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: testID()})
	if !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestProcessMedia_AudioSuccess(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	repo := &mock.MediaRepository{Record: rec}
	uploads := &mock.Storage{FileData: []byte("audio-bytes")}
	processed := &mock.Storage{}
	stt := &mock.SpeechToText{Text: "hello world"}

	svc := newProcessor(repo, uploads, processed, stt, &mock.TextToSpeech{}, &mock.AudioExtractor{})
	out, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != model.MediaStatusCompleted {
		t.Errorf("status: expected completed, got %s", out.Status)
	}
	if out.ProcessedKey == nil || *out.ProcessedKey != TranscriptKey(rec.ID) {
		t.Errorf("unexpected processed key: %v", out.ProcessedKey)
	}
	if !stt.Called || stt.Lang != "en" {
		t.Errorf("expected speech-to-text with source language, got called=%v lang=%q", stt.Called, stt.Lang)
	}
	if string(processed.SavedData) != "hello world" {
		t.Errorf("transcript content: got %q", processed.SavedData)
	}
	if repo.Updated == nil || repo.Updated.Status != model.MediaStatusCompleted {
		t.Error("expected record committed as completed")
	}
	if !repo.ClaimCalled || repo.ClaimFrom != model.MediaStatusPending || repo.ClaimTo != model.MediaStatusProcessing {
		t.Errorf("expected pending->processing claim, got %s->%s", repo.ClaimFrom, repo.ClaimTo)
	}
}

func TestProcessMedia_VideoSuccess(t *testing.T) {
	rec := pendingRecord(model.FileTypeVideo)
	repo := &mock.MediaRepository{Record: rec}
	processed := &mock.Storage{}
	ex := &mock.AudioExtractor{Audio: []byte("mp3-bytes")}

	svc := newProcessor(repo, &mock.Storage{FileData: []byte("video")}, processed, &mock.SpeechToText{}, &mock.TextToSpeech{}, ex)
	out, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ex.Called {
		t.Error("expected audio extractor to be selected for video")
	}
	if out.ProcessedKey == nil || *out.ProcessedKey != AudioKey(rec.ID) {
		t.Errorf("unexpected processed key: %v", out.ProcessedKey)
	}
	if string(processed.SavedData) != "mp3-bytes" {
		t.Errorf("artifact content: got %q", processed.SavedData)
	}
}

func TestProcessMedia_TextSuccess(t *testing.T) {
	rec := pendingRecord(model.FileTypeText)
	repo := &mock.MediaRepository{Record: rec}
	uploads := &mock.Storage{FileData: []byte("hello world\n")}
	processed := &mock.Storage{}
	tts := &mock.TextToSpeech{Audio: []byte("speech")}

	svc := newProcessor(repo, uploads, processed, &mock.SpeechToText{}, tts, &mock.AudioExtractor{})
	out, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != model.MediaStatusCompleted {
		t.Errorf("status: expected completed, got %s", out.Status)
	}
	if tts.Text != "hello world" {
		t.Errorf("expected trimmed source text, got %q", tts.Text)
	}
	if tts.Lang != "ne" {
		t.Errorf("expected target language, got %q", tts.Lang)
	}
	if len(processed.SavedData) == 0 {
		t.Error("expected non-empty audio artifact")
	}
}

func TestProcessMedia_ProviderFailureMarksFailed(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	repo := &mock.MediaRepository{Record: rec}
	stt := &mock.SpeechToText{Err: &ProviderError{Provider: "whisper", Stage: "transcribe", Err: errors.New("unreadable input")}}

	svc := newProcessor(repo, &mock.Storage{}, &mock.Storage{}, stt, &mock.TextToSpeech{}, &mock.AudioExtractor{})
	out, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID})
	if err != nil {
		t.Fatalf("provider failure must not fail the call, got %v", err)
	}
	if out.Status != model.MediaStatusFailed {
		t.Errorf("status: expected failed, got %s", out.Status)
	}
	if out.ErrorMessage == nil || *out.ErrorMessage == "" {
		t.Error("expected a non-empty error message")
	}
	if out.ProcessedKey != nil {
		t.Error("failed record must not carry a processed key")
	}
}

func TestProcessMedia_EmptyTextFails(t *testing.T) {
	rec := pendingRecord(model.FileTypeText)
	repo := &mock.MediaRepository{Record: rec}
	uploads := &mock.Storage{FileData: []byte("   \n")}

	svc := newProcessor(repo, uploads, &mock.Storage{}, &mock.SpeechToText{}, &mock.TextToSpeech{}, &mock.AudioExtractor{})
	out, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != model.MediaStatusFailed {
		t.Errorf("status: expected failed, got %s", out.Status)
	}
}

func TestProcessMedia_TerminalGuard(t *testing.T) {
	for _, status := range []model.MediaStatus{model.MediaStatusCompleted, model.MediaStatusFailed} {
		rec := pendingRecord(model.FileTypeAudio)
		rec.Status = status
		repo := &mock.MediaRepository{Record: rec}

		svc := newProcessor(repo, &mock.Storage{}, &mock.Storage{}, &mock.SpeechToText{}, &mock.TextToSpeech{}, &mock.AudioExtractor{})
		_, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID})
		if !errors.Is(err, ErrTerminalStatus) {
			t.Errorf("status %s: expected ErrTerminalStatus, got %v", status, err)
		}
		if repo.ClaimCalled {
			t.Errorf("status %s: no claim should be attempted", status)
		}
	}
}

func TestProcessMedia_ReprocessFailedRecord(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	rec.Status = model.MediaStatusFailed
	oldMsg := "previous failure"
	rec.ErrorMessage = &oldMsg
	repo := &mock.MediaRepository{Record: rec}
	stt := &mock.SpeechToText{Text: "take two"}
	processed := &mock.Storage{}

	svc := newProcessor(repo, &mock.Storage{FileData: []byte("audio")}, processed, stt, &mock.TextToSpeech{}, &mock.AudioExtractor{})
	out, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID, Reprocess: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != model.MediaStatusCompleted {
		t.Errorf("status: expected completed, got %s", out.Status)
	}
	if out.ErrorMessage != nil {
		t.Error("error message should be cleared on reprocess")
	}
	if repo.ClaimFrom != model.MediaStatusFailed {
		t.Errorf("expected failed->processing claim, got from=%s", repo.ClaimFrom)
	}
}

func TestProcessMedia_ReprocessCompletedRejected(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	rec.Status = model.MediaStatusCompleted
	repo := &mock.MediaRepository{Record: rec}

	svc := newProcessor(repo, &mock.Storage{}, &mock.Storage{}, &mock.SpeechToText{}, &mock.TextToSpeech{}, &mock.AudioExtractor{})
	_, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID, Reprocess: true})
	if !errors.Is(err, ErrTerminalStatus) {
		t.Fatalf("expected ErrTerminalStatus, got %v", err)
	}
}

func TestProcessMedia_ConcurrentDispatchRefused(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	rec.Status = model.MediaStatusProcessing
	repo := &mock.MediaRepository{Record: rec}

	svc := newProcessor(repo, &mock.Storage{}, &mock.Storage{}, &mock.SpeechToText{}, &mock.TextToSpeech{}, &mock.AudioExtractor{})
	_, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID})
	if !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
}

func TestProcessMedia_ClaimConflictPropagated(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	repo := &mock.MediaRepository{Record: rec, ClaimErr: ErrStatusConflict}

	svc := newProcessor(repo, &mock.Storage{}, &mock.Storage{}, &mock.SpeechToText{}, &mock.TextToSpeech{}, &mock.AudioExtractor{})
	_, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID})
	if !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
}

func TestProcessMedia_CommitFailureCleansArtifact(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	repo := &mock.MediaRepository{Record: rec, UpdateErr: errors.New("db gone")}
	processed := &mock.Storage{}
	stt := &mock.SpeechToText{Text: "orphan"}

	svc := newProcessor(repo, &mock.Storage{FileData: []byte("audio")}, processed, stt, &mock.TextToSpeech{}, &mock.AudioExtractor{})
	_, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID})
	if err == nil {
		t.Fatal("expected error when the record commit fails")
	}
	if !processed.RemoveCalled {
		t.Error("expected the orphaned artifact to be removed")
	}
	found := false
	for _, k := range processed.RemovedKeys {
		if k == TranscriptKey(rec.ID) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected removal of %q, removed %v", TranscriptKey(rec.ID), processed.RemovedKeys)
	}
}

func TestProcessMedia_CacheInvalidatedOnCompletion(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	repo := &mock.MediaRepository{Record: rec}
	ca := &mock.Cache{}
	svc := NewMediaProcessor(repo, &mock.Storage{FileData: []byte("a")}, &mock.Storage{}, ca, &mock.SpeechToText{Text: "x"}, &mock.TextToSpeech{}, &mock.AudioExtractor{})

	if _, err := svc.ProcessMedia(context.Background(), port.ProcessMediaInput{ID: rec.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ca.DelMediaCalled || !ca.DelEtagMediaCalled {
		t.Error("expected cache invalidation after status change")
	}
}
