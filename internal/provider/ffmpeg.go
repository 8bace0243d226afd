package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/usecase/media"
)

// FFmpegExtractor demuxes the audio track of a video container into an mp3
// stream by shelling out to ffmpeg.
type FFmpegExtractor struct {
	binPath string
	runner  commandRunner
}

// compile-time check: *FFmpegExtractor must satisfy port.AudioExtractor
var _ port.AudioExtractor = (*FFmpegExtractor)(nil)

func NewFFmpegExtractor(binPath string) *FFmpegExtractor {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	return &FFmpegExtractor{binPath: binPath, runner: &execRunner{}}
}

// Probe checks that the ffmpeg binary is present and runnable.
func (e *FFmpegExtractor) Probe(ctx context.Context) error {
	if _, err := e.runner.Run(ctx, e.binPath, "-version"); err != nil {
		return fmt.Errorf("%w: ffmpeg at %q: %v", media.ErrProviderUnavailable, e.binPath, err)
	}
	return nil
}

func (e *FFmpegExtractor) Extract(ctx context.Context, r io.Reader) (io.ReadCloser, error) {
	tempDir, err := os.MkdirTemp("", "media-convert-extract-*")
	if err != nil {
		return nil, &media.ProviderError{Provider: "ffmpeg", Stage: "staging", Err: err}
	}

	inPath := filepath.Join(tempDir, "input")
	if err := stageInput(inPath, r); err != nil {
		_ = os.RemoveAll(tempDir)
		return nil, &media.ProviderError{Provider: "ffmpeg", Stage: "staging", Err: err}
	}

	outPath := filepath.Join(tempDir, "output.mp3")
	args := buildExtractArgs(inPath, outPath)
	if res, err := e.runner.Run(ctx, e.binPath, args...); err != nil {
		_ = os.RemoveAll(tempDir)
		return nil, &media.ProviderError{
			Provider: "ffmpeg",
			Stage:    "extracting",
			Err:      fmt.Errorf("exit %d: %s", res.ExitCode, firstLine(res.Stderr)),
		}
	}

	out, err := os.Open(outPath)
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return nil, &media.ProviderError{
			Provider: "ffmpeg",
			Stage:    "extracting",
			Err:      fmt.Errorf("ffmpeg completed but output file is missing: %w", err),
		}
	}

	return &tempFileReader{file: out, tempDir: tempDir}, nil
}

// buildExtractArgs drops the video stream and re-encodes audio to 192k mp3.
func buildExtractArgs(inPath, outPath string) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", inPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-b:a", "192k",
		outPath,
	}
}

// stageInput copies the source stream to a local file so ffmpeg can seek it.
func stageInput(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// tempFileReader streams a produced artifact and removes its temporary
// workspace on Close.
type tempFileReader struct {
	file    *os.File
	tempDir string
}

func (t *tempFileReader) Read(p []byte) (int, error) { return t.file.Read(p) }

func (t *tempFileReader) Close() error {
	err := t.file.Close()
	if rmErr := os.RemoveAll(t.tempDir); err == nil {
		err = rmErr
	}
	return err
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
