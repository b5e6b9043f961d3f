package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryLimiter is a per-process sliding-window limiter. It backs local runs
// and tests; multi-instance deployments should use RedisLimiter so the window
// is shared.
//
// State is guarded per client: the top-level map lock is held only long
// enough to find or create a client's window, so admission checks for
// different clients do not serialize on one lock.
type MemoryLimiter struct {
	policy Policy

	mu      sync.Mutex
	windows map[string]*clientWindow
}

type clientWindow struct {
	mu     sync.Mutex
	stamps []time.Time
}

func NewMemoryLimiter(policy Policy) *MemoryLimiter {
	return &MemoryLimiter{
		policy:  policy.withDefaults(),
		windows: make(map[string]*clientWindow),
	}
}

func (l *MemoryLimiter) Admit(_ context.Context, clientID string, now time.Time) (bool, error) {
	if clientID == "" {
		return false, errors.New("ratelimit: client id required")
	}

	l.mu.Lock()
	w, ok := l.windows[clientID]
	if !ok {
		w = &clientWindow{}
		l.windows[clientID] = w
	}
	l.mu.Unlock()

	cutoff := now.Add(-l.policy.Window)

	w.mu.Lock()
	defer w.mu.Unlock()

	// Drop stamps that fell out of the trailing window.
	kept := w.stamps[:0]
	for _, s := range w.stamps {
		if s.After(cutoff) {
			kept = append(kept, s)
		}
	}
	w.stamps = kept

	if len(w.stamps) >= l.policy.MaxRequests {
		// Rejected requests are not recorded.
		return false, nil
	}
	w.stamps = append(w.stamps, now)
	return true, nil
}
