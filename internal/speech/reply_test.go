package speech

import (
	"context"
	"errors"
	"testing"

	"intake-platform/internal/intent"
)

type fakeGen struct {
	text string
	err  error

	gotTurns []Turn
}

func (f *fakeGen) Name() string { return "fake" }

func (f *fakeGen) Generate(_ context.Context, turns []Turn) (string, error) {
	f.gotTurns = turns
	return f.text, f.err
}

func TestReply_OptOutShortCircuits(t *testing.T) {
	gen := &fakeGen{text: "should never be used"}
	r := NewReplyGenerator(gen, intent.DefaultKnowledgePack())

	text, err := r.Reply(context.Background(), "stop", intent.Classification{OptOut: true}, "", "")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if text != OptOutAck {
		t.Fatalf("got %q, want the fixed opt-out acknowledgment", text)
	}
	if gen.gotTurns != nil {
		t.Fatalf("the engine must not run for opt-out calls")
	}
}

func TestReply_ScriptedAnswerIsVerbatim(t *testing.T) {
	r := NewReplyGenerator(&fakeGen{}, intent.DefaultKnowledgePack())

	cls := intent.Classification{Topic: intent.TopicStrata, ScriptedAnswer: "Strata is about 3.6-4.6k/yr."}
	text, err := r.Reply(context.Background(), "strata?", cls, "", "")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if text != cls.ScriptedAnswer {
		t.Fatalf("got %q, want scripted answer verbatim", text)
	}
}

func TestReply_DelegatesWithComposedPrompt(t *testing.T) {
	gen := &fakeGen{text: "Happy to help with 2-bed options."}
	r := NewReplyGenerator(gen, intent.DefaultKnowledgePack())

	text, err := r.Reply(context.Background(), "tell me about 2-beds", intent.Classification{},
		"1- or 2-bed, confirm beds/parking/timeline", "Booked 2025-09-22T10:00:00+10:00 (display-suite)")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if text != gen.text {
		t.Fatalf("got %q, want engine text", text)
	}

	if len(gen.gotTurns) != 3 {
		t.Fatalf("expected 3 prompt turns, got %d", len(gen.gotTurns))
	}
	if gen.gotTurns[0].Role != RoleSystem || gen.gotTurns[1].Role != RoleUser || gen.gotTurns[2].Role != RoleAssistant {
		t.Fatalf("unexpected turn roles: %+v", gen.gotTurns)
	}
}

func TestReply_EngineErrorUsesErrorFallback(t *testing.T) {
	gen := &fakeGen{err: errors.New("deadline exceeded")}
	r := NewReplyGenerator(gen, intent.DefaultKnowledgePack())

	text, err := r.Reply(context.Background(), "hi", intent.Classification{}, "", "")
	if text != FallbackEngineError {
		t.Fatalf("got %q, want the engine-error fallback", text)
	}
	if err == nil {
		t.Fatalf("expected an informational error for logging")
	}
}

func TestReply_EmptyEngineOutputUsesEmptyFallback(t *testing.T) {
	for _, out := range []string{"", "   ", "\n"} {
		gen := &fakeGen{text: out}
		r := NewReplyGenerator(gen, intent.DefaultKnowledgePack())

		text, err := r.Reply(context.Background(), "hi", intent.Classification{}, "", "")
		if text != FallbackEmptyReply {
			t.Fatalf("engine output %q: got %q, want the empty-reply fallback", out, text)
		}
		if err == nil {
			t.Fatalf("expected an informational error for logging")
		}
	}
}

func TestReply_TwoFallbacksAreDistinct(t *testing.T) {
	if FallbackEngineError == FallbackEmptyReply {
		t.Fatalf("the two failure modes must stay distinguishable to callers")
	}
}
