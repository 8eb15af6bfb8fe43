// Package handler provides the HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/feature/users/transport/http/dto"
	"contacts_backend/internal/feature/users/usecase"
	"contacts_backend/internal/platform/token"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

// UsersUsecase defines the profile operations the handlers depend on.
type UsersUsecase interface {
	UpdateAvatar(ctx context.Context, user *entity.User, filename, contentType string, body io.Reader, size int64) (*entity.User, error)
}

// UserHandler handles HTTP requests for the authenticated user's profile.
type UserHandler struct {
	users UsersUsecase
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(users UsersUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := token.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(user))
}

// UpdateAvatar replaces the user's avatar with an uploaded image. The image
// is sent as the multipart form field "file".
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	user, ok := token.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "file is required"})
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorRes{Error: "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("failed to open uploaded avatar", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "could not read upload"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	updated, err := h.users.UpdateAvatar(c.Request.Context(), user, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		if errors.Is(err, usecase.ErrStorageUnavailable) {
			slog.Warn("avatar upload rejected, storage not configured", "user_id", user.ID)
			c.JSON(http.StatusServiceUnavailable, dto.ErrorRes{Error: "avatar uploads are disabled"})
			return
		}
		slog.Error("avatar upload failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "could not update avatar"})
		return
	}

	slog.Info("avatar updated", "user_id", updated.ID)
	c.JSON(http.StatusOK, dto.NewProfileRes(updated))
}
