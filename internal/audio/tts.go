package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	ttsRequestTimeout = 10 * time.Second
	maxClipBytes      = 2 << 20
)

// Synthesizer turns a phrase into playable audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// HTTPSynthesizer fetches speech from a GET endpoint taking the phrase in
// the q parameter and the language in tl.
type HTTPSynthesizer struct {
	Endpoint string
	Lang     string
	Client   *http.Client
}

// NewHTTPSynthesizer returns a synthesizer for endpoint.
func NewHTTPSynthesizer(endpoint, lang string) *HTTPSynthesizer {
	if strings.TrimSpace(lang) == "" {
		lang = "en"
	}
	return &HTTPSynthesizer{
		Endpoint: strings.TrimSpace(endpoint),
		Lang:     lang,
		Client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// Synthesize requests audio for text.
func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty phrase")
	}
	if s.Endpoint == "" {
		return nil, errors.New("tts endpoint is not configured")
	}
	base, err := url.Parse(s.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid tts endpoint: %w", err)
	}
	params := base.Query()
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.Lang)
	base.RawQuery = params.Encode()

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxClipBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) > maxClipBytes {
		return nil, fmt.Errorf("audio clip exceeds %d bytes", maxClipBytes)
	}
	if len(data) == 0 {
		return nil, errors.New("empty audio response")
	}
	return data, nil
}
