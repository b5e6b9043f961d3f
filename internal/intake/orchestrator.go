package intake

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"intake-platform/internal/intent"
	"intake-platform/internal/lead"
	"intake-platform/internal/qualify"
	"intake-platform/internal/ratelimit"
	"intake-platform/internal/schedule"
)

// ErrRateLimited is the only terminal error an admitted caller can see; the
// HTTP layer maps it to 429. No lead is written for rate-limited calls.
var ErrRateLimited = errors.New("intake: too many requests")

// ReplyEngine produces the caller-facing text. *speech.ReplyGenerator
// satisfies it.
type ReplyEngine interface {
	Reply(ctx context.Context, message string, cls intent.Classification, qualification, bookingMessage string) (string, error)
}

// AudioChain turns reply text into audio. *speech.Chain satisfies it.
type AudioChain interface {
	Synthesize(ctx context.Context, text string) ([]byte, string, error)
}

// LeadRecorder persists the call record. *lead.Service satisfies it.
type LeadRecorder interface {
	Record(ctx context.Context, l lead.Lead) (lead.Lead, error)
}

// Orchestrator runs the per-call pipeline:
//
//	admit -> classify -> (opt-out | qualify -> schedule) -> reply -> audio -> log
//
// Failure policy, in order of appearance:
//   - limiter backend error: fail open, the call proceeds;
//   - limiter rejection: terminal, nothing else runs, nothing is logged;
//   - scheduling failure: booking comes back failed, pipeline continues;
//   - reply engine failure: a fixed fallback string is used;
//   - synthesis failure: text is delivered without audio;
//   - persistence failure (after its one retry): the response carries a
//     warning, the caller still gets their reply.
//
// Exactly one lead append is attempted per admitted call, opt-outs included.
type Orchestrator struct {
	limiter    ratelimit.Limiter
	classifier *intent.Classifier
	engine     *qualify.Engine
	scheduler  *schedule.Scheduler
	replier    ReplyEngine
	audio      AudioChain
	leads      LeadRecorder

	log   *slog.Logger
	clock func() time.Time
}

func NewOrchestrator(
	limiter ratelimit.Limiter,
	classifier *intent.Classifier,
	engine *qualify.Engine,
	scheduler *schedule.Scheduler,
	replier ReplyEngine,
	audio AudioChain,
	leads LeadRecorder,
	log *slog.Logger,
) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		limiter:    limiter,
		classifier: classifier,
		engine:     engine,
		scheduler:  scheduler,
		replier:    replier,
		audio:      audio,
		leads:      leads,
		log:        log,
		clock:      time.Now,
	}
}

// HandleCall executes the pipeline for one admitted request. The only
// non-nil error it returns is ErrRateLimited.
func (o *Orchestrator) HandleCall(ctx context.Context, req CallRequest) (CallResponse, error) {
	now := o.clock()
	log := o.log.With("caller", req.Phone)

	admitted, err := o.limiter.Admit(ctx, req.Phone, now)
	if err != nil {
		// The limiter backend being down must not take intake down with it.
		log.Warn("rate limiter unavailable, failing open", "error", err)
		admitted = true
	}
	if !admitted {
		return CallResponse{}, ErrRateLimited
	}

	cls := o.classifier.Classify(req.Message)

	var (
		qualification string
		band          qualify.Band
		booking       schedule.Booking
		flags         []string
	)
	if cls.OptOut {
		flags = append(flags, lead.FlagUnsubscribe)
	} else {
		band, qualification = o.engine.Classify(req.Budget)
		booking = o.scheduler.Schedule(req.PreferredSlot, now)
		if !booking.Confirmed() {
			log.Warn("scheduling failed", "booking_id", booking.BookingID, "preferred_slot", req.PreferredSlot)
		}
	}

	text, replyErr := o.replier.Reply(ctx, req.Message, cls, qualification, booking.Message)
	if replyErr != nil {
		log.Warn("reply degraded to fallback", "error", replyErr)
	}

	resp := CallResponse{
		Response:        text,
		Booking:         booking,
		ComplianceFlags: flags,
	}

	if o.audio != nil {
		audio, provider, synthErr := o.audio.Synthesize(ctx, text)
		if synthErr != nil {
			log.Warn("voice synthesis failed", "error", synthErr)
			resp.AudioError = synthErr.Error()
		} else {
			resp.AudioB64 = base64.StdEncoding.EncodeToString(audio)
			resp.AudioProvider = provider
		}
	}

	record := lead.Lead{
		CallerPhone: req.Phone,
		CallerName:  req.Name,
		CallerEmail: req.Email,
		Summary:     text,
		Qualification: lead.Qualification{
			Budget:        req.Budget,
			Beds:          req.Beds,
			Parking:       req.Parking,
			OwnerOccupier: req.OwnerOccupier,
			Timeframe:     req.Timeframe,
			FinanceStatus: req.FinanceStatus,
			Suburbs:       req.PreferredSuburbs,
			Band:          string(band),
		},
		Booking: lead.BookingRef{
			BookingID: booking.BookingID,
			Slot:      booking.Slot,
			Mode:      string(booking.Mode),
			Status:    string(booking.Status),
		},
		ComplianceFlags: flags,
		TranscriptURL:   req.TranscriptURL,
		RecordingURL:    req.RecordingURL,
	}

	if stored, err := o.leads.Record(ctx, record); err != nil {
		log.Error("lead append failed after retry", "error", err)
		resp.LeadWarning = "lead could not be recorded; the interaction was not saved"
	} else {
		resp.LeadLogged = true
		log.Info("call handled",
			"lead_id", stored.ID,
			"band", record.Qualification.Band,
			"booking_status", record.Booking.Status,
			"opt_out", cls.OptOut,
		)
	}

	return resp, nil
}
