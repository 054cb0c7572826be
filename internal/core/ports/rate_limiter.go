package ports

import (
	"context"
	"time"
)

// RateLimiter is a best-effort guard against repeated actions per key.
// Allow returns true when the caller may proceed and records the new
// not-before instant; a denied call does not extend the window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, window time.Duration) (bool, error)
}
