package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements the rate-limiter port on Redis so the guard holds
// across server instances. SET NX with a TTL makes the first caller in a
// window the winner; the key simply expires when the window closes.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow reports whether the action keyed by key may proceed, claiming the
// window when it does. A denied call does not extend the window.
func (l *RateLimiter) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, "ratelimit:"+key, "1", window).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}
	return ok, nil
}
