package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	"intake-platform/internal/intent"
)

// Fixed caller-facing strings. The two fallbacks are deliberately distinct:
// one means the engine failed outright, the other means it answered with
// nothing usable.
const (
	OptOutAck = "No worries, you will not be contacted again."

	FallbackEngineError = "I'm having trouble processing that. Please repeat."
	FallbackEmptyReply  = "I'm not sure about that one. Would you like a human specialist to follow up?"
)

// ReplyGenerator produces the caller-facing text for one call.
//
// Priority:
//  1. Opt-out acknowledgment (fixed text, nothing else runs).
//  2. A scripted answer from the classifier, verbatim.
//  3. The language engine, with a composed prompt.
//  4. A fixed fallback when the engine fails or answers empty.
//
// The engine call is the only unreliable step; its failure never escapes
// this type. The returned error is informational, for logging only — the
// reply text is always usable.
type ReplyGenerator struct {
	gen  Generator
	pack intent.KnowledgePack

	// Timeout bounds the engine call.
	Timeout time.Duration
}

func NewReplyGenerator(gen Generator, pack intent.KnowledgePack) *ReplyGenerator {
	return &ReplyGenerator{gen: gen, pack: pack, Timeout: 10 * time.Second}
}

func (r *ReplyGenerator) Reply(ctx context.Context, message string, cls intent.Classification, qualification, bookingMessage string) (string, error) {
	if cls.OptOut {
		return OptOutAck, nil
	}
	if cls.ScriptedAnswer != "" {
		return cls.ScriptedAnswer, nil
	}

	if r.gen == nil {
		return FallbackEngineError, fmt.Errorf("speech: generator not configured")
	}

	turns := []Turn{
		{Role: RoleSystem, Content: fmt.Sprintf("You are a friendly %s sales agent.", r.pack.Project)},
		{Role: RoleUser, Content: message},
		{Role: RoleAssistant, Content: fmt.Sprintf("Based on your budget, I recommend: %s. Appointment: %s", qualification, bookingMessage)},
	}

	genCtx := ctx
	cancel := func() {}
	if r.Timeout > 0 {
		genCtx, cancel = context.WithTimeout(ctx, r.Timeout)
	}
	text, err := r.gen.Generate(genCtx, turns)
	cancel()

	if err != nil {
		return FallbackEngineError, fmt.Errorf("speech: generation failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return FallbackEmptyReply, fmt.Errorf("speech: generator returned empty reply")
	}
	return text, nil
}
