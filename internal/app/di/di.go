// Package di provides dependency injection factories for creating
// application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"contacts_backend/internal/platform/session"
	"contacts_backend/internal/shared/ratelimiter"
)

// NewUserCache creates the Redis-backed user snapshot cache. With a nil
// client the cache is disabled and every lookup behaves as a miss.
func NewUserCache(rdb *redis.Client) *session.UserCache {
	return session.NewUserCache(rdb, "users", session.DefaultTTL)
}

// NewLimiter creates the Redis-backed rate limiter. With a nil client the
// limiter lets every request through.
func NewLimiter(rdb *redis.Client) *ratelimiter.Limiter {
	return ratelimiter.NewLimiter(rdb, "ratelimit")
}
