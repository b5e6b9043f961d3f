package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiConfig configures the Gemini generator adapter.
type GeminiConfig struct {
	APIKey string
	Model  string

	// BaseURL is overridable for tests.
	BaseURL string

	HTTPClient *http.Client
}

// GeminiGenerator calls the Generative Language REST API. The prompt turns
// are flattened into a single text part; this service needs one-shot
// completions, not multi-turn chat state.
type GeminiGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiGenerator(cfg GeminiConfig) *GeminiGenerator {
	base := cfg.BaseURL
	if base == "" {
		base = defaultGeminiBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiGenerator{apiKey: cfg.APIKey, model: model, baseURL: base, client: client}
}

func (g *GeminiGenerator) Name() string { return "gemini" }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiGenerator) Generate(ctx context.Context, turns []Turn) (string, error) {
	if g.apiKey == "" {
		return "", ErrNoCredentials
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: flattenTurns(turns)}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini request encode: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the log line without trusting its size.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gemini response decode: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

// flattenTurns renders the prompt as "Role: content" lines, mirroring how
// the conversation is presented to a single-completion endpoint.
func flattenTurns(turns []Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		role := t.Role
		if role != "" {
			role = strings.ToUpper(role[:1]) + role[1:]
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, t.Content))
	}
	return strings.Join(lines, "\n")
}
