package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/usecase/media"
	"github.com/asubedi/media-convert-go/internal/validation"
)

// multipartMemory caps how much of the multipart body is held in memory;
// anything larger spills to temp files.
const multipartMemory = 32 << 20

type UploadMediaRequest struct {
	FileType       string `json:"file_type"       validate:"required,oneof=video text audio"`
	SourceLanguage string `json:"source_language" validate:"omitempty,oneof=en hi ne"`
	TargetLanguage string `json:"target_language" validate:"omitempty,oneof=en hi ne"`
}

// UploadMediaHandler accepts a multipart upload and creates the media record.
func UploadMediaHandler(svc port.MediaUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadSize)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				WriteError(w, http.StatusRequestEntityTooLarge, "File exceeds the maximum upload size", nil)
				return
			}
			WriteError(w, http.StatusBadRequest, "Invalid multipart payload", err)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "A file is required", err)
			return
		}
		defer func() { _ = file.Close() }()

		req := UploadMediaRequest{
			FileType:       r.FormValue("file_type"),
			SourceLanguage: r.FormValue("source_language"),
			TargetLanguage: r.FormValue("target_language"),
		}
		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			log.Printf("❌  Validation failed: %s", errsJSON)
			return
		}

		fileType, err := model.ParseFileType(req.FileType)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", err)
			return
		}

		rec, err := svc.UploadMedia(r.Context(), port.UploadMediaInput{
			Filename:       header.Filename,
			FileType:       fileType,
			SourceLanguage: req.SourceLanguage,
			TargetLanguage: req.TargetLanguage,
			Reader:         file,
			SizeBytes:      header.Size,
		})
		if err != nil {
			if errors.Is(err, media.ErrFileTooLarge) {
				WriteError(w, http.StatusRequestEntityTooLarge, "File exceeds the maximum upload size", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not upload media", err)
			return
		}

		RespondJSON(w, http.StatusCreated, rec)
		log.Printf("✅  Successfully uploaded media #%s (%s)", rec.ID, rec.FileType)
	}
}
