package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/platform/password"
	"contacts_backend/internal/platform/session"
	"contacts_backend/internal/platform/token"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists when a
	// user with the same email exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user matching the email address, or
	// ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdateRefreshToken overwrites the stored refresh token; an empty
	// string logs the user out.
	UpdateRefreshToken(ctx context.Context, user *entity.User, refreshToken string) error

	// MarkConfirmed sets the confirmed flag for the email address.
	MarkConfirmed(ctx context.Context, email string) error

	// UpdateAvatar stores the avatar URL and returns the updated user.
	UpdateAvatar(ctx context.Context, email, url string) (*entity.User, error)
}

// TokenService issues and validates the kind-tagged tokens used by the auth
// flows.
type TokenService interface {
	CreateAccessToken(subject string) (string, error)
	CreateRefreshToken(subject string) (string, error)
	CreateEmailToken(subject string) (string, error)
	Decode(tokenStr string, want token.Kind) (string, error)
}

// UserCache is the best-effort snapshot cache consulted by Resolve. Every
// error from Get is treated as a miss; Set and Invalidate failures are
// logged, never propagated.
type UserCache interface {
	Get(ctx context.Context, email string) (*entity.User, error)
	Set(ctx context.Context, user *entity.User) error
	Invalidate(ctx context.Context, email string) error
}

// EmailSender delivers the confirmation message for a freshly issued
// email-kind token.
type EmailSender interface {
	SendConfirmation(ctx context.Context, to, username, token string) error
}

// TokenPair bundles a short-lived access token with a long-lived refresh
// token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users  UserRepository
	tokens TokenService
	cache  UserCache
	mail   EmailSender
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenService, cache UserCache, mail EmailSender) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		cache:  cache,
		mail:   mail,
	}
}

// Signup registers a new user with a hashed password and a Gravatar default
// avatar, then queues the confirmation mail. Mail delivery is best-effort:
// a send failure is logged and the signup still succeeds.
func (u *authUsecase) Signup(ctx context.Context, username, email, plainPassword string) (*entity.User, error) {
	hashed, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Avatar:   gravatarURL(email),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	u.sendConfirmationMail(user)
	return user, nil
}

// Login authenticates a user and returns a fresh token pair, storing the
// refresh token on the user record. A bcrypt comparison runs even when the
// user does not exist, to keep response timing uniform.
func (u *authUsecase) Login(ctx context.Context, email, plainPassword string) (*TokenPair, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash so bcrypt.CompareHashAndPassword always runs.
	digest := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		digest = user.Password
	}
	match := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plainPassword)) == nil

	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}
	if !user.Confirmed {
		return nil, ErrEmailNotConfirmed
	}

	pair, err := u.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Refresh rotates a refresh token: a valid, currently stored token yields a
// new pair and overwrites the stored token; a mismatched token clears the
// stored one (forced logout) and fails. A missing user short-circuits before
// any store mutation.
//
// Two concurrent calls with the same valid token may both succeed before
// either overwrite lands; this benign race is accepted, the store's own
// transaction discipline governs the final value.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	subject, err := u.tokens.Decode(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, subject)
	if err != nil {
		return nil, ErrRevokedToken
	}

	if user.RefreshToken != refreshToken {
		// A token we issued but no longer recognize means it was rotated
		// away or the user logged in elsewhere; drop the session entirely.
		if clearErr := u.users.UpdateRefreshToken(ctx, user, ""); clearErr != nil {
			slog.Error("failed to clear refresh token", "error", clearErr, "email", user.Email)
		}
		return nil, ErrRevokedToken
	}

	return u.issuePair(ctx, user)
}

// Resolve validates a bearer access token and returns the authenticated
// user. The cache is consulted first; any cache failure falls back to the
// user store, so the authorization outcome never depends on cache health.
func (u *authUsecase) Resolve(ctx context.Context, bearer string) (*entity.User, error) {
	subject, err := u.tokens.Decode(bearer, token.KindAccess)
	if err != nil {
		slog.Debug("access token rejected", "error", err)
		return nil, ErrInvalidCredentials
	}

	if user, err := u.cache.Get(ctx, subject); err == nil {
		return user, nil
	} else if !errors.Is(err, session.ErrCacheMiss) {
		slog.Warn("user cache lookup failed, falling back to store", "error", err)
	}

	user, err := u.users.FindByEmail(ctx, subject)
	if err != nil {
		// Same generic error as a bad token: never reveal whether the
		// account exists.
		return nil, ErrInvalidCredentials
	}

	if err := u.cache.Set(ctx, user); err != nil {
		slog.Warn("failed to populate user cache", "error", err, "email", user.Email)
	}
	return user, nil
}

// ConfirmEmail validates an email-kind token and marks the account
// confirmed. It reports ErrAlreadyConfirmed when there is nothing to do.
func (u *authUsecase) ConfirmEmail(ctx context.Context, emailToken string) error {
	subject, err := u.tokens.Decode(emailToken, token.KindEmail)
	if err != nil {
		return ErrInvalidCredentials
	}

	user, err := u.users.FindByEmail(ctx, subject)
	if err != nil {
		return ErrInvalidCredentials
	}
	if user.Confirmed {
		return ErrAlreadyConfirmed
	}

	if err := u.users.MarkConfirmed(ctx, subject); err != nil {
		return fmt.Errorf("failed to confirm email: %w", err)
	}
	return nil
}

// RequestConfirmation re-sends the confirmation mail. Unknown addresses are
// silently accepted so the endpoint cannot be used to enumerate accounts.
func (u *authUsecase) RequestConfirmation(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}
	if user.Confirmed {
		return ErrAlreadyConfirmed
	}

	u.sendConfirmationMail(user)
	return nil
}

func (u *authUsecase) issuePair(ctx context.Context, user *entity.User) (*TokenPair, error) {
	access, err := u.tokens.CreateAccessToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refresh, err := u.tokens.CreateRefreshToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := u.users.UpdateRefreshToken(ctx, user, refresh); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// sendConfirmationMail issues an email-kind token and delivers it in the
// background. The request that triggered it never waits on SMTP.
func (u *authUsecase) sendConfirmationMail(user *entity.User) {
	if u.mail == nil {
		slog.Warn("mail sender not configured, skipping confirmation mail", "email", user.Email)
		return
	}

	emailToken, err := u.tokens.CreateEmailToken(user.Email)
	if err != nil {
		slog.Error("failed to create email token", "error", err, "email", user.Email)
		return
	}

	go func() {
		if err := u.mail.SendConfirmation(context.Background(), user.Email, user.Username, emailToken); err != nil {
			slog.Error("failed to send confirmation mail", "error", err, "email", user.Email)
		}
	}()
}
