package reporting

import (
	"context"
	"errors"
	"time"

	"intake-platform/internal/lead"
	"intake-platform/internal/qualify"
	"intake-platform/internal/schedule"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository abstracts data access for reporting.
//
// IMPORTANT:
// - Implementations should query the immutable lead records only; reporting
//   never writes.

type Repository interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]lead.Lead, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) LeadsSummary(ctx context.Context, req LeadsSummaryRequest) (LeadsSummary, error) {
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return LeadsSummary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return LeadsSummary{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.ListBetween(ctx, req.Range.From, req.Range.To)
	if err != nil {
		return LeadsSummary{}, err
	}

	var out LeadsSummary
	for _, l := range rows {
		out.TotalLeads++

		if hasFlag(l.ComplianceFlags, lead.FlagUnsubscribe) {
			out.OptOuts++
			// Opt-out calls carry no band or booking.
			continue
		}

		switch qualify.Band(l.Qualification.Band) {
		case qualify.BandEntry:
			out.EntryBand++
		case qualify.BandMid:
			out.MidBand++
		case qualify.BandTop:
			out.TopBand++
		}

		switch schedule.Status(l.Booking.Status) {
		case schedule.StatusConfirmed:
			out.BookingsConfirmed++
		case schedule.StatusFailed:
			out.BookingsFailed++
		}

		switch schedule.Mode(l.Booking.Mode) {
		case schedule.ModeDisplaySuite:
			out.DisplaySuiteVisits++
		case schedule.ModeVideo:
			out.VideoCalls++
		}
	}
	return out, nil
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}
