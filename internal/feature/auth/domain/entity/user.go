// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
// The email is the primary lookup key and is immutable after creation.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Username is the display name shown in confirmation mail and responses.
	Username string `gorm:"size:50" json:"username"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:150;not null" json:"email"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext.
	Password string `gorm:"size:255;not null" json:"-"`

	// Avatar is the URL of the user's avatar image, if any.
	Avatar string `gorm:"size:250" json:"avatar"`

	// RefreshToken is the single currently valid refresh token for this
	// user. A new login or a refresh rotation overwrites it; an empty
	// string means the user is logged out.
	RefreshToken string `gorm:"size:512" json:"-"`

	// Confirmed reports whether the email address has been verified.
	// It starts false and only ever moves to true.
	Confirmed bool `gorm:"default:false" json:"confirmed"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}
