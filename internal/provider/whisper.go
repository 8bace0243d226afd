package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/usecase/media"
)

// WhisperTranscriber turns speech audio into text with whisper.cpp. Whisper
// only accepts 16kHz mono PCM, so ffmpeg resamples the input first.
type WhisperTranscriber struct {
	ffmpegPath string
	binPath    string
	modelPath  string
	runner     commandRunner
	readFile   func(name string) ([]byte, error)
}

// compile-time check: *WhisperTranscriber must satisfy port.SpeechToText
var _ port.SpeechToText = (*WhisperTranscriber)(nil)

func NewWhisperTranscriber(ffmpegPath, binPath, modelPath string) *WhisperTranscriber {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if binPath == "" {
		binPath = "whisper.cpp"
	}
	return &WhisperTranscriber{
		ffmpegPath: ffmpegPath,
		binPath:    binPath,
		modelPath:  modelPath,
		runner:     &execRunner{},
		readFile:   os.ReadFile,
	}
}

// Probe checks the whisper binary runs and the model file is readable.
func (w *WhisperTranscriber) Probe(ctx context.Context) error {
	if _, err := os.Stat(w.modelPath); err != nil {
		return fmt.Errorf("%w: whisper model at %q: %v", media.ErrProviderUnavailable, w.modelPath, err)
	}
	if _, err := w.runner.Run(ctx, w.binPath, "--help"); err != nil {
		return fmt.Errorf("%w: whisper.cpp at %q: %v", media.ErrProviderUnavailable, w.binPath, err)
	}
	return nil
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, r io.Reader, lang string) (string, error) {
	tempDir, err := os.MkdirTemp("", "media-convert-transcribe-*")
	if err != nil {
		return "", &media.ProviderError{Provider: "whisper", Stage: "staging", Err: err}
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	inPath := filepath.Join(tempDir, "input")
	if err := stageInput(inPath, r); err != nil {
		return "", &media.ProviderError{Provider: "whisper", Stage: "staging", Err: err}
	}

	wavPath := filepath.Join(tempDir, "resampled-16k-mono.wav")
	if res, err := w.runner.Run(ctx, w.ffmpegPath, buildResampleArgs(inPath, wavPath)...); err != nil {
		return "", &media.ProviderError{
			Provider: "whisper",
			Stage:    "resampling",
			Err:      fmt.Errorf("exit %d: %s", res.ExitCode, firstLine(res.Stderr)),
		}
	}

	textBase := filepath.Join(tempDir, "transcript")
	if res, err := w.runner.Run(ctx, w.binPath, buildWhisperArgs(w.modelPath, wavPath, textBase, lang)...); err != nil {
		return "", &media.ProviderError{
			Provider: "whisper",
			Stage:    "transcribing",
			Err:      fmt.Errorf("exit %d: %s", res.ExitCode, firstLine(res.Stderr)),
		}
	}

	content, err := w.readFile(textBase + ".txt")
	if err != nil {
		return "", &media.ProviderError{
			Provider: "whisper",
			Stage:    "transcribing",
			Err:      fmt.Errorf("whisper.cpp completed but transcript file is missing: %w", err),
		}
	}

	transcript := strings.TrimSpace(string(content))
	if transcript == "" {
		return "", &media.ProviderError{
			Provider: "whisper",
			Stage:    "transcribing",
			Err:      fmt.Errorf("no speech recognised in the audio"),
		}
	}
	return transcript, nil
}

// buildResampleArgs builds preprocessing CLI args for mono 16k PCM WAV output.
func buildResampleArgs(inPath, outPath string) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", inPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		outPath,
	}
}

// buildWhisperArgs builds whisper.cpp args for txt transcript export.
func buildWhisperArgs(modelPath, audioPath, textBase, lang string) []string {
	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-of", textBase,
		"-otxt",
	}
	if lang = strings.TrimSpace(lang); lang != "" {
		args = append(args, "-l", lang)
	}
	return args
}
