package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"contacts_backend/internal/platform/config"
)

// NewRedisClient connects to the Redis cache backend and verifies the
// connection with a ping. Callers may run without Redis; a nil client makes
// the cache and rate limiter degrade to pass-through.
func NewRedisClient(cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
