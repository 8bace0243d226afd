package media

import (
	"errors"
	"fmt"
)

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")

	// ErrMediaNotFound is returned when no record exists for the given ID, or
	// when a download is requested for a record without an artifact.
	ErrMediaNotFound = errors.New("media not found")
	// ErrFileTooLarge rejects uploads over the size ceiling before any record
	// is created.
	ErrFileTooLarge = errors.New("file exceeds the maximum upload size")
	// ErrTerminalStatus rejects dispatching a record that already completed or
	// failed without an explicit reprocess intent.
	ErrTerminalStatus = errors.New("media already reached a terminal status")
	// ErrStatusConflict means another dispatch holds the record right now.
	ErrStatusConflict = errors.New("media is already being processed")
	// ErrProviderUnavailable means the external runtime backing a provider was
	// not ready when the record was dispatched.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// ProviderError attaches which provider and stage a transformation failed in,
// so the message stored on the record is actionable.
type ProviderError struct {
	Provider string
	Stage    string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Stage, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
