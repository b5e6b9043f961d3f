package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultElevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// ElevenLabsConfig configures the primary synthesis provider.
type ElevenLabsConfig struct {
	APIKey  string
	VoiceID string

	// BaseURL is overridable for tests.
	BaseURL string

	HTTPClient *http.Client
}

// ElevenLabsSynthesizer calls the ElevenLabs text-to-speech REST API and
// returns the MP3 payload.
type ElevenLabsSynthesizer struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
}

func NewElevenLabsSynthesizer(cfg ElevenLabsConfig) *ElevenLabsSynthesizer {
	base := cfg.BaseURL
	if base == "" {
		base = defaultElevenLabsBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &ElevenLabsSynthesizer{apiKey: cfg.APIKey, voiceID: cfg.VoiceID, baseURL: base, client: client}
}

func (s *ElevenLabsSynthesizer) Name() string { return "elevenlabs" }

type elevenLabsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.apiKey == "" || s.voiceID == "" {
		return nil, ErrNoCredentials
	}

	body, err := json.Marshal(elevenLabsRequest{Text: text, ModelID: "eleven_multilingual_v2"})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request encode: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", s.baseURL, s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevenlabs returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs response read: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("elevenlabs returned empty audio")
	}
	return audio, nil
}
