package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/usecase/media"
)

// maxChunkRunes is the longest text fragment the translate TTS endpoint
// accepts per request.
const maxChunkRunes = 200

// GTTSSynthesiser produces speech audio by querying the Google Translate TTS
// endpoint chunk by chunk and concatenating the returned mp3 frames.
type GTTSSynthesiser struct {
	endpoint string
	client   *http.Client
}

// compile-time check: *GTTSSynthesiser must satisfy port.TextToSpeech
var _ port.TextToSpeech = (*GTTSSynthesiser)(nil)

func NewGTTSSynthesiser(endpoint string, client *http.Client) *GTTSSynthesiser {
	if client == nil {
		client = http.DefaultClient
	}
	return &GTTSSynthesiser{endpoint: endpoint, client: client}
}

func (g *GTTSSynthesiser) Synthesise(ctx context.Context, text, lang string) (io.ReadCloser, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &media.ProviderError{
			Provider: "gtts",
			Stage:    "synthesising",
			Err:      fmt.Errorf("nothing to synthesise"),
		}
	}

	var buf bytes.Buffer
	for _, chunk := range splitChunks(text, maxChunkRunes) {
		if err := g.fetchChunk(ctx, &buf, chunk, lang); err != nil {
			return nil, err
		}
	}
	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}

func (g *GTTSSynthesiser) fetchChunk(ctx context.Context, buf *bytes.Buffer, chunk, lang string) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", chunk)
	q.Set("tl", lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return &media.ProviderError{Provider: "gtts", Stage: "synthesising", Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return &media.ProviderError{
			Provider: "gtts",
			Stage:    "synthesising",
			Err:      fmt.Errorf("%w: %v", media.ErrProviderUnavailable, err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &media.ProviderError{
			Provider: "gtts",
			Stage:    "synthesising",
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	if _, err := io.Copy(buf, resp.Body); err != nil {
		return &media.ProviderError{Provider: "gtts", Stage: "synthesising", Err: err}
	}
	return nil
}

// splitChunks cuts text into fragments of at most max runes, preferring word
// boundaries so the synthesised speech does not break mid-word.
func splitChunks(text string, max int) []string {
	if utf8.RuneCountInString(text) <= max {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0
	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		if currentLen > 0 && currentLen+1+wordLen > max {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		// a single word longer than max is sent as its own oversized chunk
		current.WriteString(word)
		currentLen += wordLen
	}
	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
