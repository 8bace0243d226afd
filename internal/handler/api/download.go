package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/asubedi/media-convert-go/internal/api_context"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/usecase/media"
)

// DownloadMediaHandler streams the processed artifact of a record.
func DownloadMediaHandler(svc port.MediaDownloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.DownloadMedia(r.Context(), id)
		if err != nil {
			if errors.Is(err, media.ErrMediaNotFound) {
				WriteError(w, http.StatusNotFound, "Media not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not download media", err)
			return
		}
		defer func() { _ = out.Reader.Close() }()

		w.Header().Set("Content-Type", out.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
		if out.SizeBytes > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(out.SizeBytes, 10))
		}
		if _, err := io.Copy(w, out.Reader); err != nil {
			log.Printf("❌  Failed to stream artifact of media #%s: %v", id, err)
			return
		}

		log.Printf("✅  Successfully served artifact of media #%s", id)
	}
}
