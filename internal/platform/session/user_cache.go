// Package session provides the Redis-backed user snapshot cache that the
// current-user resolver consults before hitting the database.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"contacts_backend/internal/feature/auth/domain/entity"
)

// DefaultTTL is how long a cached user snapshot stays valid. A snapshot may
// be stale for up to this window (e.g. right after an avatar change); that is
// an accepted bound, not a bug, because the cache is never authoritative.
const DefaultTTL = 300 * time.Second

// ErrCacheMiss is returned when no usable snapshot exists for the key.
// Callers must treat every error from Get as a miss and fall back to the
// user store; the cache is a performance optimization only.
var ErrCacheMiss = errors.New("user not found in cache")

// UserCache maps an email to a serialized user snapshot with a short TTL.
// A nil Redis client degrades to a permanent miss so the server can run
// without the cache backend.
type UserCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewUserCache creates a UserCache. If ttl is 0 it defaults to DefaultTTL,
// and an empty prefix defaults to "users".
func NewUserCache(client *redis.Client, prefix string, ttl time.Duration) *UserCache {
	if prefix == "" {
		prefix = "users"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &UserCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *UserCache) key(email string) string {
	return fmt.Sprintf("%s:%s", c.prefix, email)
}

// Get retrieves the cached snapshot for email. Any failure, including an
// unreachable backend or a corrupted entry, comes back as an error the
// caller treats as a miss.
func (c *UserCache) Get(ctx context.Context, email string) (*entity.User, error) {
	if c.client == nil {
		return nil, ErrCacheMiss
	}

	data, err := c.client.Get(ctx, c.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var user entity.User
	if err := json.Unmarshal(data, &user); err != nil {
		// Drop the corrupted entry so the next resolution repopulates it.
		_ = c.client.Del(ctx, c.key(email)).Err()
		return nil, ErrCacheMiss
	}

	return &user, nil
}

// Set stores a snapshot of user under its email with the configured TTL,
// overwriting any previous entry.
func (c *UserCache) Set(ctx context.Context, user *entity.User) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user snapshot: %w", err)
	}
	return c.client.Set(ctx, c.key(user.Email), data, c.ttl).Err()
}

// Invalidate removes the snapshot for email, if present.
func (c *UserCache) Invalidate(ctx context.Context, email string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key(email)).Err()
}
