package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/asubedi/media-convert-go/internal/mock"
	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

func uploadInput(ft model.FileType) port.UploadMediaInput {
	return port.UploadMediaInput{
		Filename:       "clip.dat",
		FileType:       ft,
		SourceLanguage: "en",
		TargetLanguage: "hi",
		Reader:         strings.NewReader("payload"),
		SizeBytes:      7,
	}
}

func TestUploadMedia_TooLarge(t *testing.T) {
	repo := &mock.MediaRepository{}
	svc := NewMediaUploader(repo, &mock.Storage{}, &mock.MediaProcessor{}, &mock.TaskDispatcher{}, uuid.NewUUID)

	in := uploadInput(model.FileTypeAudio)
	in.SizeBytes = MaxUploadSize + 1
	_, err := svc.UploadMedia(context.Background(), in)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if repo.Created != nil {
		t.Error("no record should be created for an oversized upload")
	}
}

func TestUploadMedia_UnknownFileType(t *testing.T) {
	svc := NewMediaUploader(&mock.MediaRepository{}, &mock.Storage{}, &mock.MediaProcessor{}, &mock.TaskDispatcher{}, uuid.NewUUID)

	in := uploadInput("image")
	if _, err := svc.UploadMedia(context.Background(), in); err == nil {
		t.Fatal("expected error for unknown file type")
	}
}

func TestUploadMedia_UnsupportedLanguage(t *testing.T) {
	svc := NewMediaUploader(&mock.MediaRepository{}, &mock.Storage{}, &mock.MediaProcessor{}, &mock.TaskDispatcher{}, uuid.NewUUID)

	in := uploadInput(model.FileTypeText)
	in.TargetLanguage = "fr"
	if _, err := svc.UploadMedia(context.Background(), in); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestUploadMedia_AudioCreatesPendingAndEnqueues(t *testing.T) {
	repo := &mock.MediaRepository{}
	strg := &mock.Storage{}
	processor := &mock.MediaProcessor{}
	dispatcher := &mock.TaskDispatcher{}
	svc := NewMediaUploader(repo, strg, processor, dispatcher, uuid.NewUUID)

	out, err := svc.UploadMedia(context.Background(), uploadInput(model.FileTypeAudio))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != model.MediaStatusPending {
		t.Errorf("status: expected pending, got %s", out.Status)
	}
	if !strg.SaveCalled {
		t.Error("expected the blob to be saved")
	}
	if repo.Created == nil {
		t.Fatal("expected a record to be created")
	}
	if processor.Called {
		t.Error("audio must not be processed synchronously")
	}
	if !dispatcher.Called {
		t.Error("expected a processing task to be enqueued")
	}
}

func TestUploadMedia_TextProcessedSynchronously(t *testing.T) {
	repo := &mock.MediaRepository{}
	done := &model.MediaRecord{Status: model.MediaStatusCompleted}
	processor := &mock.MediaProcessor{Out: done}
	dispatcher := &mock.TaskDispatcher{}
	svc := NewMediaUploader(repo, &mock.Storage{}, processor, dispatcher, uuid.NewUUID)

	out, err := svc.UploadMedia(context.Background(), uploadInput(model.FileTypeText))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !processor.Called {
		t.Fatal("expected synchronous processing for text")
	}
	if out != done {
		t.Error("expected the processed record to be returned")
	}
	if dispatcher.Called {
		t.Error("text must not be enqueued")
	}
}

func TestUploadMedia_DefaultLanguages(t *testing.T) {
	repo := &mock.MediaRepository{}
	svc := NewMediaUploader(repo, &mock.Storage{}, &mock.MediaProcessor{}, &mock.TaskDispatcher{}, uuid.NewUUID)

	in := uploadInput(model.FileTypeAudio)
	in.SourceLanguage = ""
	in.TargetLanguage = ""
	if _, err := svc.UploadMedia(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Created.SourceLanguage != "en" || repo.Created.TargetLanguage != "en" {
		t.Errorf("expected en/en defaults, got %s/%s", repo.Created.SourceLanguage, repo.Created.TargetLanguage)
	}
}

func TestUploadMedia_CreateFailureCleansBlob(t *testing.T) {
	repo := &mock.MediaRepository{CreateErr: errors.New("db fail")}
	strg := &mock.Storage{}
	svc := NewMediaUploader(repo, strg, &mock.MediaProcessor{}, &mock.TaskDispatcher{}, uuid.NewUUID)

	_, err := svc.UploadMedia(context.Background(), uploadInput(model.FileTypeAudio))
	if err == nil {
		t.Fatal("expected error when record creation fails")
	}
	if !strg.RemoveCalled {
		t.Error("expected the uploaded blob to be removed")
	}
}

func TestUploadMedia_EnqueueFailureIsNotFatal(t *testing.T) {
	repo := &mock.MediaRepository{}
	dispatcher := &mock.TaskDispatcher{Err: errors.New("redis down")}
	svc := NewMediaUploader(repo, &mock.Storage{}, &mock.MediaProcessor{}, dispatcher, uuid.NewUUID)

	out, err := svc.UploadMedia(context.Background(), uploadInput(model.FileTypeVideo))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != model.MediaStatusPending {
		t.Errorf("status: expected pending, got %s", out.Status)
	}
}
