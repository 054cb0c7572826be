// Package ratelimit provides the in-memory rate limiter used for
// single-process deployments and tests. Multi-instance deployments should
// wire the Redis-backed implementation instead.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter maps keys to a not-before instant in process memory.
// Entries whose window has passed are dropped on the next Allow call for
// the same key; the map is otherwise unbounded, which is acceptable for a
// soft guard.
type MemoryLimiter struct {
	mu        sync.Mutex
	notBefore map[string]time.Time
	now       func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		notBefore: make(map[string]time.Time),
		now:       time.Now,
	}
}

// NewMemoryLimiterWithClock injects a clock. Intended for tests.
func NewMemoryLimiterWithClock(now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		notBefore: make(map[string]time.Time),
		now:       now,
	}
}

// Allow returns true and records now+window when the key's window has
// passed; false without mutating state otherwise.
func (l *MemoryLimiter) Allow(_ context.Context, key string, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if until, ok := l.notBefore[key]; ok && now.Before(until) {
		return false, nil
	}
	l.notBefore[key] = now.Add(window)
	return true, nil
}
