// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrInvalidCredentials covers every authentication failure the caller
	// is allowed to see: bad token, unknown user, wrong password. The
	// distinction lives only in logs, never in responses.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailAlreadyExists is returned when signing up with an email that
	// is already registered.
	ErrEmailAlreadyExists = errors.New("account already exists")

	// ErrEmailNotConfirmed is returned on login before the email address
	// has been verified.
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrRevokedToken is returned when a refresh token does not match the
	// one stored on the user record; presenting one forces a logout.
	ErrRevokedToken = errors.New("refresh token has been revoked")

	// ErrUserNotFound is returned when a user cannot be found by email.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyConfirmed is returned when confirming an email address that
	// is already confirmed. Callers treat it as a benign outcome.
	ErrAlreadyConfirmed = errors.New("email is already confirmed")
)
