package mock

import (
	"context"
	"io"
	"strings"
)

// SpeechToText is a hand-rolled port.SpeechToText for unit tests.
type SpeechToText struct {
	Text string
	Err  error

	Called bool
	Lang   string
}

func (m *SpeechToText) Transcribe(ctx context.Context, r io.Reader, lang string) (string, error) {
	m.Called = true
	m.Lang = lang
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// TextToSpeech is a hand-rolled port.TextToSpeech for unit tests.
type TextToSpeech struct {
	Audio []byte
	Err   error

	Called bool
	Text   string
	Lang   string
}

func (m *TextToSpeech) Synthesise(ctx context.Context, text, lang string) (io.ReadCloser, error) {
	m.Called = true
	m.Text = text
	m.Lang = lang
	if m.Err != nil {
		return nil, m.Err
	}
	return io.NopCloser(strings.NewReader(string(m.Audio))), nil
}

// AudioExtractor is a hand-rolled port.AudioExtractor for unit tests.
type AudioExtractor struct {
	Audio []byte
	Err   error

	Called bool
}

func (m *AudioExtractor) Extract(ctx context.Context, r io.Reader) (io.ReadCloser, error) {
	m.Called = true
	if m.Err != nil {
		return nil, m.Err
	}
	return io.NopCloser(strings.NewReader(string(m.Audio))), nil
}
