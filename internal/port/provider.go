package port

import (
	"context"
	"io"
)

// The transformation providers are external, potentially slow black boxes.
// The processor only observes their success/failure outcome and output.

// SpeechToText transcribes an audio stream in the given language.
type SpeechToText interface {
	Transcribe(ctx context.Context, r io.Reader, lang string) (string, error)
}

// TextToSpeech synthesises speech audio for a text in the given language.
type TextToSpeech interface {
	Synthesise(ctx context.Context, text, lang string) (io.ReadCloser, error)
}

// AudioExtractor demultiplexes the audio track of a video container into a
// standalone audio stream.
type AudioExtractor interface {
	Extract(ctx context.Context, r io.Reader) (io.ReadCloser, error)
}
