package model

import (
	"fmt"
	"time"

	"github.com/asubedi/media-convert-go/internal/uuid"
)

// FileType describes what kind of media was uploaded and therefore which
// transformation the pipeline runs against it.
type FileType string

const (
	FileTypeVideo FileType = "video"
	FileTypeText  FileType = "text"
	FileTypeAudio FileType = "audio"
)

// ParseFileType validates a raw file type value coming from a client.
func ParseFileType(s string) (FileType, error) {
	switch FileType(s) {
	case FileTypeVideo, FileTypeText, FileTypeAudio:
		return FileType(s), nil
	default:
		return "", fmt.Errorf("unknown file type %q", s)
	}
}

// MediaStatus is the processing state of a record.
type MediaStatus string

const (
	MediaStatusPending    MediaStatus = "pending"
	MediaStatusProcessing MediaStatus = "processing"
	MediaStatusCompleted  MediaStatus = "completed"
	MediaStatusFailed     MediaStatus = "failed"
)

// Terminal reports whether no further transition may leave the status.
func (s MediaStatus) Terminal() bool {
	return s == MediaStatusCompleted || s == MediaStatusFailed
}

// CanTransition reports whether the state machine allows from -> to.
// Completed is closed; failed only re-opens towards processing, which is the
// explicit reprocess path.
func CanTransition(from, to MediaStatus) bool {
	switch from {
	case MediaStatusPending:
		return to == MediaStatusProcessing
	case MediaStatusProcessing:
		return to == MediaStatusCompleted || to == MediaStatusFailed
	case MediaStatusFailed:
		return to == MediaStatusProcessing
	default:
		return false
	}
}

// ValidateTransition returns a descriptive error for a forbidden transition.
func ValidateTransition(from, to MediaStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid status transition: %s -> %s", from, to)
	}
	return nil
}

// AllowedLanguages are the language tags the speech providers accept.
var AllowedLanguages = map[string]bool{
	"en": true,
	"hi": true,
	"ne": true,
}

// MediaRecord describes one uploaded file and its processing outcome.
// SourceKey and FileType never change after creation; ProcessedKey and
// ErrorMessage are owned by the processor.
type MediaRecord struct {
	ID               uuid.UUID   `json:"id"`
	SourceKey        string      `json:"source_key"`
	OriginalFilename string      `json:"original_filename"`
	FileType         FileType    `json:"file_type"`
	SourceLanguage   string      `json:"source_language"`
	TargetLanguage   string      `json:"target_language"`
	ProcessedKey     *string     `json:"processed_key,omitempty"`
	SizeBytes        int64       `json:"size_bytes"`
	Status           MediaStatus `json:"status"`
	ErrorMessage     *string     `json:"error_message,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
