// Package dto defines request and response shapes for the users API.
package dto

import "contacts_backend/internal/feature/auth/domain/entity"

// ProfileRes is the authenticated user's own profile.
type ProfileRes struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Confirmed bool   `json:"confirmed"`
}

// NewProfileRes maps a user entity into its profile response. Password and
// refresh token are mapped nowhere on purpose.
func NewProfileRes(u *entity.User) ProfileRes {
	return ProfileRes{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Confirmed: u.Confirmed,
	}
}

// ErrorRes is the generic error response body.
type ErrorRes struct {
	Error string `json:"error"`
}
