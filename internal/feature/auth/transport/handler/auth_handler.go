// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/feature/auth/transport/http/dto"
	"contacts_backend/internal/feature/auth/usecase"
)

// AuthUsecase defines the authentication operations the handlers depend on.
// Following Go convention: the interface is defined by the consumer
// (handler), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, username, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*usecase.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*usecase.TokenPair, error)
	ConfirmEmail(ctx context.Context, emailToken string) error
	RequestConfirmation(ctx context.Context, email string) error
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles user registration.
// - 400 on validation errors
// - 409 when the email is already registered
// - 201 with the created user on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("signup rejected, account exists", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: "account already exists"})
			return
		}
		slog.Error("signup failed", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "signup failed"})
		return
	}

	slog.Info("user signup successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Login authenticates a user and returns a token pair.
// Every failure except the unconfirmed-email gate collapses into the same
// generic 401 so the endpoint leaks nothing about which part was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		if errors.Is(err, usecase.ErrEmailNotConfirmed) {
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "email not confirmed"})
			return
		}
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid email or password"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

// Refresh rotates the refresh token presented as a bearer credential and
// returns a fresh pair. Any failure is the same generic 401.
func (h *AuthHandler) Refresh(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid refresh token"})
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		slog.Warn("token refresh failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenRes{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

// ConfirmEmail handles the confirmation link from the signup mail.
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	err := h.auth.ConfirmEmail(c.Request.Context(), c.Param("token"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.MessageRes{Message: "email confirmed"})
	case errors.Is(err, usecase.ErrAlreadyConfirmed):
		c.JSON(http.StatusOK, dto.MessageRes{Message: "your email is already confirmed"})
	default:
		slog.Warn("email confirmation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "verification error"})
	}
}

// RequestEmail re-sends the confirmation mail. The response is the same for
// known and unknown addresses so accounts cannot be enumerated.
func (h *AuthHandler) RequestEmail(c *gin.Context) {
	var req dto.RequestEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	err := h.auth.RequestConfirmation(c.Request.Context(), req.Email)
	if err != nil && errors.Is(err, usecase.ErrAlreadyConfirmed) {
		c.JSON(http.StatusOK, dto.MessageRes{Message: "your email is already confirmed"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "check your email for confirmation"})
}
