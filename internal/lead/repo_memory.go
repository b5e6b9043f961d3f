package lead

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is a simple in-memory append-only repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu    sync.Mutex
	leads []Lead

	// FailNext makes that many upcoming Append calls fail. Tests use it
	// to exercise the retry path.
	FailNext int
	failErr  error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

// FailAppends arranges for the next n Append calls to return err.
func (r *MemoryRepo) FailAppends(n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FailNext = n
	r.failErr = err
}

func (r *MemoryRepo) Append(ctx context.Context, l Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailNext > 0 {
		r.FailNext--
		return r.failErr
	}
	r.leads = append(r.leads, l)
	return nil
}

func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Lead, len(r.leads))
	copy(out, r.leads)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) ListBetween(ctx context.Context, from, to time.Time) ([]Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Lead
	for _, l := range r.leads {
		if !l.CreatedAt.Before(from) && l.CreatedAt.Before(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

// Leads returns a copy of everything appended, in insertion order.
func (r *MemoryRepo) Leads() []Lead {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Lead, len(r.leads))
	copy(out, r.leads)
	return out
}
