package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultGoogleTTSBaseURL = "https://translate.google.com"

// GoogleTTSConfig configures the secondary, credential-less synthesizer.
type GoogleTTSConfig struct {
	// Lang is the speech language code, e.g. "en".
	Lang string

	// BaseURL is overridable for tests.
	BaseURL string

	HTTPClient *http.Client
}

// GoogleTTSSynthesizer uses the public Translate TTS endpoint as the
// fallback voice. No API key is needed, which is exactly why it sits second
// in the chain: it keeps audio available when the paid provider is down or
// unconfigured.
type GoogleTTSSynthesizer struct {
	lang    string
	baseURL string
	client  *http.Client
}

func NewGoogleTTSSynthesizer(cfg GoogleTTSConfig) *GoogleTTSSynthesizer {
	lang := cfg.Lang
	if lang == "" {
		lang = "en"
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultGoogleTTSBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &GoogleTTSSynthesizer{lang: lang, baseURL: base, client: client}
}

func (s *GoogleTTSSynthesizer) Name() string { return "google-tts" }

func (s *GoogleTTSSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("google-tts: empty text")
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", s.lang)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google-tts call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google-tts returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("google-tts response read: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("google-tts returned empty audio")
	}
	return audio, nil
}
