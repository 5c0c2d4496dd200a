package ratelimit

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter is a process-local fixed-window limiter. Each key's counter
// expires with its window.
type MemoryLimiter struct {
	c      *gocache.Cache
	max    int64
	window time.Duration
}

// NewMemoryLimiter creates a MemoryLimiter allowing max hits per window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		c:      gocache.New(window, time.Minute),
		max:    int64(max),
		window: window,
	}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	var hits int64
	for {
		if err := l.c.Add(key, int64(1), l.window); err == nil {
			hits = 1
			break
		}
		n, err := l.c.IncrementInt64(key, 1)
		if err == nil {
			hits = n
			break
		}
		// The counter expired between Add and IncrementInt64; start over.
	}

	var ttl time.Duration
	if _, exp, ok := l.c.GetWithExpiration(key); ok && !exp.IsZero() {
		ttl = time.Until(exp)
	}
	return decide(hits, l.max, ttl, l.window), nil
}
