package speech

import (
	"context"
	"errors"
	"testing"
)

type fakeSynth struct {
	name  string
	audio []byte
	err   error

	calls int
}

func (f *fakeSynth) Name() string { return f.name }

func (f *fakeSynth) Synthesize(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func TestChain_PrimarySuccessSkipsFallback(t *testing.T) {
	primary := &fakeSynth{name: "primary", audio: []byte("mp3-a")}
	secondary := &fakeSynth{name: "secondary", audio: []byte("mp3-b")}
	c := NewChain(primary, secondary)

	audio, provider, err := c.Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if string(audio) != "mp3-a" || provider != "primary" {
		t.Fatalf("got %q from %q, want primary audio", audio, provider)
	}
	if secondary.calls != 0 {
		t.Fatalf("secondary must not be called when primary succeeds")
	}
}

func TestChain_FallsBackOnPrimaryFailure(t *testing.T) {
	primary := &fakeSynth{name: "primary", err: ErrNoCredentials}
	secondary := &fakeSynth{name: "secondary", audio: []byte("mp3-b")}
	c := NewChain(primary, secondary)

	audio, provider, err := c.Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if string(audio) != "mp3-b" || provider != "secondary" {
		t.Fatalf("got %q from %q, want secondary audio", audio, provider)
	}
	if primary.calls != 1 {
		t.Fatalf("primary should be attempted exactly once, got %d", primary.calls)
	}
}

func TestChain_BothFailing(t *testing.T) {
	primary := &fakeSynth{name: "primary", err: errors.New("quota exceeded")}
	secondary := &fakeSynth{name: "secondary", err: errors.New("unreachable")}
	c := NewChain(primary, secondary)

	_, _, err := c.Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("each provider gets exactly one attempt, got %d/%d", primary.calls, secondary.calls)
	}
}

func TestChain_NoProviders(t *testing.T) {
	c := NewChain()
	_, _, err := c.Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}
}
