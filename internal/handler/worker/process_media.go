package worker

import (
	"context"
	"errors"
	"log"

	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/task"
	"github.com/asubedi/media-convert-go/internal/usecase/media"
	msuuid "github.com/asubedi/media-convert-go/internal/uuid"
	guuid "github.com/google/uuid"
)

// ProcessMediaHandler handles a process-media task. It converts the incoming
// task payload to the input expected by the media processor and delegates the
// call. A record that was already picked up or already finished is not a
// reason to retry the task.
func ProcessMediaHandler(ctx context.Context, p task.ProcessMediaPayload, svc port.MediaProcessor) error {
	id, err := guuid.Parse(p.MediaID)
	if err != nil {
		log.Printf("❌  Invalid media ID %q: %v", p.MediaID, err)
		return err
	}

	in := port.ProcessMediaInput{ID: msuuid.UUID(id)}
	rec, err := svc.ProcessMedia(ctx, in)
	if err != nil {
		if errors.Is(err, media.ErrStatusConflict) || errors.Is(err, media.ErrTerminalStatus) {
			log.Printf("⚠️  Skipping media #%s: %v", id, err)
			return nil
		}
		log.Printf("❌  Failed to process media #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Finished processing media #%s with status %q", id, rec.Status)
	return nil
}
