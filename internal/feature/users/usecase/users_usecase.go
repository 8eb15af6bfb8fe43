// Package usecase implements the business logic for the users feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"contacts_backend/internal/feature/auth/domain/entity"
	authusecase "contacts_backend/internal/feature/auth/usecase"
)

// ErrStorageUnavailable is returned when no object storage backend is
// configured and an upload is requested.
var ErrStorageUnavailable = errors.New("avatar storage unavailable")

// AvatarStorage uploads avatar images and returns their public URL.
type AvatarStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// usersUsecase implements profile management for authenticated users.
type usersUsecase struct {
	users   authusecase.UserRepository
	cache   authusecase.UserCache
	storage AvatarStorage
}

// NewUsersUsecase creates a new instance of usersUsecase. storage may be
// nil when no object storage is configured; avatar uploads then fail with
// ErrStorageUnavailable.
func NewUsersUsecase(users authusecase.UserRepository, cache authusecase.UserCache, storage AvatarStorage) *usersUsecase {
	return &usersUsecase{users: users, cache: cache, storage: storage}
}

// UpdateAvatar uploads the image to object storage under a random key,
// stores the resulting URL on the user record and refreshes the session
// cache so the next request sees the new avatar immediately.
func (u *usersUsecase) UpdateAvatar(ctx context.Context, user *entity.User, filename, contentType string, body io.Reader, size int64) (*entity.User, error) {
	if u.storage == nil {
		return nil, ErrStorageUnavailable
	}

	key := avatarKey(filename)
	url, err := u.storage.Upload(ctx, key, contentType, body, size)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	updated, err := u.users.UpdateAvatar(ctx, user.Email, url)
	if err != nil {
		return nil, fmt.Errorf("store avatar url: %w", err)
	}

	if err := u.cache.Set(ctx, updated); err != nil {
		slog.Warn("failed to refresh cached user after avatar change", "email", updated.Email, "error", err)
	}

	return updated, nil
}

// avatarKey builds a collision-free object key, keeping the original file
// extension so the stored object keeps a sensible content hint.
func avatarKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "avatars/" + uuid.NewString() + ext
}
