package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeProcessMedia = "media:process"

type ProcessMediaPayload struct {
	MediaID string `json:"media_id"`
}

// NewProcessMediaTask creates an Asynq task for processing a media by ID.
func NewProcessMediaTask(mediaID string) (*asynq.Task, error) {
	p := ProcessMediaPayload{MediaID: mediaID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-media payload: %w", err)
	}
	return asynq.NewTask(TypeProcessMedia, data), nil
}

// ParseProcessMediaPayload parses the task payload to ProcessMediaPayload.
func ParseProcessMediaPayload(t *asynq.Task) (ProcessMediaPayload, error) {
	var p ProcessMediaPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ProcessMediaPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
