package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/gymdesk/gym-api/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter(t *testing.T) {
	t.Parallel()

	l := NewMemoryLimiter(2, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		res, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, int64(i), res.Hits)
		assert.Equal(t, int64(2-i), res.Remaining)
	}

	res, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Zero(t, res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, res.RetryAfter, time.Minute)

	other, err := l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestMemoryLimiterWindowExpires(t *testing.T) {
	t.Parallel()

	l := NewMemoryLimiter(1, 50*time.Millisecond)
	ctx := context.Background()

	res, _ := l.Allow(ctx, "k")
	assert.True(t, res.Allowed)
	res, _ = l.Allow(ctx, "k")
	assert.False(t, res.Allowed)

	time.Sleep(80 * time.Millisecond)
	res, _ = l.Allow(ctx, "k")
	assert.True(t, res.Allowed)
}

func TestDecide(t *testing.T) {
	t.Parallel()

	res := decide(5, 3, 0, time.Minute)
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Minute, res.RetryAfter)

	res = decide(3, 3, 10*time.Second, time.Minute)
	assert.True(t, res.Allowed)
	assert.Zero(t, res.RetryAfter)
}

func TestNew(t *testing.T) {
	t.Parallel()

	assert.Nil(t, New(config.RateLimitConfig{LoginMax: 0, LoginWindowSeconds: 60}, nil))
	assert.IsType(t, &MemoryLimiter{}, New(config.RateLimitConfig{LoginMax: 5, LoginWindowSeconds: 60}, nil))

	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { _ = client.Close() })
	assert.IsType(t, &RedisLimiter{}, New(config.RateLimitConfig{LoginMax: 5, LoginWindowSeconds: 60}, client))
}

func TestRedisLimiterKeyIsPerWindow(t *testing.T) {
	t.Parallel()

	l := NewRedisLimiter(nil, "", 1, time.Minute)
	l.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 30, 0, time.UTC) }
	k1 := l.key("10.0.0.1 x")
	l.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 59, 0, time.UTC) }
	k2 := l.key("10.0.0.1 x")
	l.now = func() time.Time { return time.Date(2025, 1, 1, 12, 1, 0, 0, time.UTC) }
	k3 := l.key("10.0.0.1 x")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k2, k3)
	assert.Contains(t, k1, "rl:10.0.0.1_x:")
}
