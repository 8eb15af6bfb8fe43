// Package ratelimiter provides a Redis-backed fixed-window request limiter
// applied as Gin middleware. The counter lives in Redis so several server
// instances share one budget per client.
package ratelimiter

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter counts requests per client IP in fixed windows.
type Limiter struct {
	rdb    *redis.Client
	prefix string
}

// NewLimiter creates a Limiter. With a nil Redis client every request is
// allowed, so the server keeps working when the cache backend is down.
func NewLimiter(rdb *redis.Client, prefix string) *Limiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &Limiter{rdb: rdb, prefix: prefix}
}

// Middleware returns a handler enforcing at most limit requests per window
// for each client IP on the named route group. Redis failures fail open: an
// unreachable backend must throttle performance, not availability.
func (l *Limiter) Middleware(name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("%s:%s:%s", l.prefix, name, c.ClientIP())

		count, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err, "key", key)
			c.Next()
			return
		}
		if count == 1 {
			// First hit in this window starts the clock.
			if err := l.rdb.Expire(ctx, key, window).Err(); err != nil {
				slog.Warn("failed to set rate limit window", "error", err, "key", key)
			}
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
