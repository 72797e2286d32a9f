package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"campus_backend/internal/shared/ratelimiter"
)

// NewLimiter creates a rate limiter implementation.
// If Redis is available, it returns a Redis-backed implementation so the
// limit is shared across processes. Otherwise, it falls back to the
// in-process fixed-window limiter.
func NewLimiter(rdb *redis.Client, prefix string, limit int, interval time.Duration) ratelimiter.Limiter {
	if rdb != nil {
		return ratelimiter.NewRedisLimiter(rdb, prefix, limit, interval)
	}
	return ratelimiter.NewFixedWindow(limit, interval)
}
