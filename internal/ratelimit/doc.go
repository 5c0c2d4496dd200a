// Package ratelimit counts requests per key in fixed windows. The Redis
// limiter shares counts across server instances; the memory limiter is used
// when no Redis is configured.
package ratelimit
