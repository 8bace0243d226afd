package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/asubedi/media-convert-go/internal/api_context"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/usecase/media"
)

type ProcessMediaRequest struct {
	Reprocess bool `json:"reprocess"`
}

// ProcessMediaHandler dispatches a record to its transformation provider. The
// body is optional; {"reprocess":true} opts into re-running a failed record.
func ProcessMediaHandler(svc port.MediaProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var req ProcessMediaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		rec, err := svc.ProcessMedia(r.Context(), port.ProcessMediaInput{ID: id, Reprocess: req.Reprocess})
		if err != nil {
			switch {
			case errors.Is(err, media.ErrMediaNotFound):
				WriteError(w, http.StatusNotFound, "Media not found", nil)
			case errors.Is(err, media.ErrStatusConflict):
				WriteError(w, http.StatusConflict, "Media is already being processed", nil)
			case errors.Is(err, media.ErrTerminalStatus):
				WriteError(w, http.StatusConflict, "Media already reached a terminal status", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not process media", err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, rec)
		log.Printf("✅  Finished processing media #%s with status %q", id, rec.Status)
	}
}
