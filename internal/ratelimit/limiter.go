package ratelimit

import (
	"context"
	"time"

	"github.com/gymdesk/gym-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// Result describes one Allow decision.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
	Hits       int64
}

// Limiter decides whether another request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func decide(hits, max int64, ttl, window time.Duration) Result {
	res := Result{Allowed: hits <= max, Hits: hits, Remaining: max - hits}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = ttl
		if res.RetryAfter <= 0 {
			res.RetryAfter = window
		}
	}
	return res
}

// New returns the limiter for cfg: Redis-backed when client is non-nil,
// in-memory otherwise. It returns nil when login limiting is disabled.
func New(cfg config.RateLimitConfig, client *redis.Client) Limiter {
	if cfg.LoginMax <= 0 {
		return nil
	}
	if client != nil {
		return NewRedisLimiter(client, "gym:rl:", cfg.LoginMax, cfg.LoginWindow())
	}
	return NewMemoryLimiter(cfg.LoginMax, cfg.LoginWindow())
}
