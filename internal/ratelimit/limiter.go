package ratelimit

import (
	"context"
	"time"
)

// Limiter is the admission-control contract guarding the intake endpoint.
//
// Rules:
//   - Rejection is a normal outcome, not an error. The error return is for
//     backend trouble (e.g. redis unreachable); callers decide the failure
//     policy (intake fails open).
//   - Admissions for one client must be checked-and-recorded atomically so a
//     burst can never admit more than the window allows.
//   - Clients must not contend on each other's state.
type Limiter interface {
	Admit(ctx context.Context, clientID string, now time.Time) (bool, error)
}

// Policy is the sliding-window admission policy shared by all backends.
type Policy struct {
	// Window is the trailing interval over which admissions are counted.
	Window time.Duration
	// MaxRequests is the number of admissions allowed inside Window.
	MaxRequests int
}

func (p Policy) withDefaults() Policy {
	out := p
	if out.Window <= 0 {
		out.Window = 60 * time.Second
	}
	if out.MaxRequests <= 0 {
		out.MaxRequests = 5
	}
	return out
}
