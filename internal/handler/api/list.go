package api

import (
	"log"
	"net/http"

	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/port"
)

// ListMediaHandler returns all media records, most recent first.
func ListMediaHandler(svc port.MediaLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.ListMedia(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not list medias", err)
			return
		}
		if records == nil {
			records = []model.MediaRecord{}
		}

		RespondJSON(w, http.StatusOK, records)
		log.Printf("✅  Successfully listed %d medias", len(records))
	}
}
