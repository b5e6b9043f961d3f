package ratelimit

import (
	"context"
	"errors"
	"time"

	"intake-platform/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter keeps one sorted set of admission timestamps per client,
// pruned and appended inside a Lua script so the check-and-record is atomic
// per key across every API instance.
type RedisLimiter struct {
	rdb    *redis.Client
	policy Policy

	// keyPrefix namespaces limiter keys away from other redis users.
	keyPrefix string
}

func NewRedisLimiter(rdb *redis.Client, policy Policy) *RedisLimiter {
	return &RedisLimiter{
		rdb:       rdb,
		policy:    policy.withDefaults(),
		keyPrefix: "intake:admit:",
	}
}

func (l *RedisLimiter) Admit(ctx context.Context, clientID string, now time.Time) (bool, error) {
	if l.rdb == nil {
		return false, errors.New("ratelimit: redis client not configured")
	}
	if clientID == "" {
		return false, errors.New("ratelimit: client id required")
	}

	// Member token keeps same-millisecond admissions distinct in the set.
	member := uuid.NewString()
	return utils.AdmitSlidingWindow(ctx, l.rdb, l.keyPrefix+clientID, now, l.policy.Window, l.policy.MaxRequests, member)
}
