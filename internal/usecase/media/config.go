package media

import (
	"path"

	"github.com/asubedi/media-convert-go/internal/model"
	"github.com/asubedi/media-convert-go/internal/uuid"
)

const MaxUploadSize = 500 * 1024 * 1024 // 500 MB

// The two storage areas: originals land in uploads, artifacts in processed.
const (
	BucketUploads   = "uploads"
	BucketProcessed = "processed"
)

func IsLanguageAllowed(lang string) bool {
	return model.AllowedLanguages[lang]
}

// TranscriptKey is the processed-bucket key of a speech-to-text artifact.
func TranscriptKey(id uuid.UUID) string {
	return "transcript_" + id.String() + ".txt"
}

// AudioKey is the processed-bucket key of a text-to-speech or
// audio-extraction artifact.
func AudioKey(id uuid.UUID) string {
	return "audio_" + id.String() + ".mp3"
}

// ContentTypeForKey derives the download content type from the artifact's
// extension.
func ContentTypeForKey(key string) string {
	switch path.Ext(key) {
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".mp3":
		return "audio/mpeg"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
