package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter: INCR the window's key and set its
// expiry on the first hit.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	max    int64
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter creates a RedisLimiter allowing max hits per window.
func NewRedisLimiter(client *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		max:    int64(max),
		window: window,
		now:    time.Now,
	}
}

func (l *RedisLimiter) key(key string) string {
	start := l.now().UTC().Truncate(l.window)
	return fmt.Sprintf("%s%s:%d", l.prefix, strings.ReplaceAll(key, " ", "_"), start.Unix())
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := l.key(key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit counter: %w", err)
	}

	remaining := ttl.Val()
	if incr.Val() == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return Result{}, fmt.Errorf("rate limit expiry: %w", err)
		}
		remaining = l.window
	}

	return decide(incr.Val(), l.max, remaining, l.window), nil
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
