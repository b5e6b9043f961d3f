package lead

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"intake-platform/internal/schedule"
)

// Repository is the persistence contract for leads.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, l Lead) error
	ListRecent(ctx context.Context, limit int) ([]Lead, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]Lead, error)
}

// Service records qualified-call leads.
//
// IMPORTANT:
// - Recording is best-effort from the caller's point of view. A failed
//   append must never fail the call; the orchestrator reports it as a
//   warning instead.
// - Append is retried exactly once before giving up.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidLead = errors.New("lead: invalid lead")

// Record fills in identity and timestamp, then appends. On a first
// failure the append is attempted once more; the second error is final.
func (s *Service) Record(ctx context.Context, l Lead) (Lead, error) {
	if s.repo == nil {
		return Lead{}, errors.New("lead: repository not configured")
	}
	if l.CallerPhone == "" {
		return Lead{}, ErrInvalidLead
	}
	if l.Summary == "" {
		return Lead{}, ErrInvalidLead
	}

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.clock().In(schedule.SalesZone)
	}

	if err := s.repo.Append(ctx, l); err != nil {
		if retryErr := s.repo.Append(ctx, l); retryErr != nil {
			return Lead{}, retryErr
		}
	}
	return l, nil
}

// ListRecent returns the newest leads first, capped at limit.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, limit)
}

// ListBetween returns leads created in [from, to).
func (s *Service) ListBetween(ctx context.Context, from, to time.Time) ([]Lead, error) {
	if !to.After(from) {
		return nil, errors.New("lead: empty time range")
	}
	return s.repo.ListBetween(ctx, from, to)
}
