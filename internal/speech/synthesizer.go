package speech

import "context"

// Synthesizer is the provider-agnostic text-to-speech contract. Output is an
// encoded audio payload (MP3 for both shipped adapters); the core only needs
// failure to be distinguishable from success.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
