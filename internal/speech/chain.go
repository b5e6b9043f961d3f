package speech

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Chain tries synthesis providers in a fixed order: each provider gets
// exactly one attempt, the first success wins, and only when every provider
// has failed does the chain surface a terminal error. Ordering is never
// randomized and a failed provider is never retried within one call.
type Chain struct {
	providers []Synthesizer

	// PerProviderTimeout bounds each attempt so a hung provider cannot
	// stall the whole call. Zero means no extra bound beyond ctx.
	PerProviderTimeout time.Duration
}

func NewChain(providers ...Synthesizer) *Chain {
	return &Chain{providers: providers}
}

// ErrAllProvidersFailed is wrapped around the joined per-provider causes.
var ErrAllProvidersFailed = errors.New("speech: all synthesis providers failed")

// Synthesize returns the audio payload and the name of the provider that
// produced it.
func (c *Chain) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	if len(c.providers) == 0 {
		return nil, "", fmt.Errorf("%w: no providers configured", ErrAllProvidersFailed)
	}

	var causes []error
	for _, p := range c.providers {
		attemptCtx := ctx
		cancel := func() {}
		if c.PerProviderTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, c.PerProviderTimeout)
		}

		audio, err := p.Synthesize(attemptCtx, text)
		cancel()
		if err == nil {
			return audio, p.Name(), nil
		}
		causes = append(causes, fmt.Errorf("%s: %w", p.Name(), err))
	}

	return nil, "", fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(causes...))
}
