package speech

import (
	"context"
	"errors"
)

// Turn is one message in a generation prompt.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Generator is the provider-agnostic language-generation contract.
//
// Rules:
//   - No provider SDK calls outside speech adapters.
//   - Implementations must honor ctx cancellation; the orchestrator bounds
//     every call with a timeout.
//   - A missing credential is an ordinary provider error, distinguishable
//     from success but handled identically to any other failure.
type Generator interface {
	Name() string
	Generate(ctx context.Context, turns []Turn) (string, error)
}

// ErrNoCredentials marks an adapter that was constructed without the
// credentials its provider requires.
var ErrNoCredentials = errors.New("speech: provider credentials not configured")
