package media

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/asubedi/media-convert-go/internal/mock"
	"github.com/asubedi/media-convert-go/internal/model"
)

func TestDeleteMedia_NotFound(t *testing.T) {
	repo := &mock.MediaRepository{GetErr: sql.ErrNoRows}
	svc := NewMediaDeleter(repo, &mock.Cache{}, &mock.Storage{}, &mock.Storage{})

	err := svc.DeleteMedia(context.Background(), testID())
	if !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestDeleteMedia_GetByIDError(t *testing.T) {
	repo := &mock.MediaRepository{GetErr: errors.New("db fail")}
	svc := NewMediaDeleter(repo, &mock.Cache{}, &mock.Storage{}, &mock.Storage{})

	if err := svc.DeleteMedia(context.Background(), testID()); err == nil || err.Error() != "db fail" {
		t.Fatalf("expected db fail, got %v", err)
	}
}

func TestDeleteMedia_Success(t *testing.T) {
	key := "audio_x.mp3"
	rec := pendingRecord(model.FileTypeVideo)
	rec.ProcessedKey = &key
	repo := &mock.MediaRepository{Record: rec}
	uploads := &mock.Storage{}
	processed := &mock.Storage{}
	ca := &mock.Cache{}
	svc := NewMediaDeleter(repo, ca, uploads, processed)

	if err := svc.DeleteMedia(context.Background(), rec.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !uploads.RemoveCalled {
		t.Error("expected the source file to be removed")
	}
	if !processed.RemoveCalled {
		t.Error("expected the artifact to be removed")
	}
	if !repo.DeleteCalled || repo.DeletedID != rec.ID {
		t.Error("expected repo.Delete to be called with the record ID")
	}
	if !ca.DelMediaCalled {
		t.Error("expected cache delete to be called")
	}
}

func TestDeleteMedia_NoProcessedFile(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	repo := &mock.MediaRepository{Record: rec}
	processed := &mock.Storage{}
	svc := NewMediaDeleter(repo, &mock.Cache{}, &mock.Storage{}, processed)

	if err := svc.DeleteMedia(context.Background(), rec.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if processed.RemoveCalled {
		t.Error("no artifact removal expected for a record without one")
	}
	if !repo.DeleteCalled {
		t.Error("expected the record to be deleted")
	}
}

func TestDeleteMedia_AbsentFileTolerated(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	repo := &mock.MediaRepository{Record: rec}
	uploads := &mock.Storage{RemoveErr: ErrObjectNotFound}
	svc := NewMediaDeleter(repo, &mock.Cache{}, uploads, &mock.Storage{})

	if err := svc.DeleteMedia(context.Background(), rec.ID); err != nil {
		t.Fatalf("an already absent file must not fail deletion, got %v", err)
	}
	if !repo.DeleteCalled {
		t.Error("expected the record to be deleted")
	}
}

func TestDeleteMedia_DeleteError(t *testing.T) {
	rec := pendingRecord(model.FileTypeAudio)
	repo := &mock.MediaRepository{Record: rec, DeleteErr: errors.New("delete fail")}
	svc := NewMediaDeleter(repo, &mock.Cache{}, &mock.Storage{}, &mock.Storage{})

	if err := svc.DeleteMedia(context.Background(), rec.ID); err == nil || err.Error() != "delete fail" {
		t.Fatalf("expected delete fail, got %v", err)
	}
}
