// Package dto defines data transfer objects for the auth feature's HTTP
// transport layer.
package dto

import "contacts_backend/internal/feature/auth/domain/entity"

// SignupReq represents the request body for the /signup endpoint.
// It uses Gin's binding tags for validation (required, email format,
// password length).
type SignupReq struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginReq represents the request body for the /login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RequestEmailReq represents the request body for /request_email.
type RequestEmailReq struct {
	Email string `json:"email" binding:"required,email"`
}

// TokenRes represents the response for a successful login or refresh.
type TokenRes struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// UserRes represents a user in API responses. Credentials never appear here.
type UserRes struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Confirmed bool   `json:"confirmed"`
}

// NewUserRes maps a user entity onto its response shape field by field.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Confirmed: u.Confirmed,
	}
}

// MessageRes is a generic informational response.
type MessageRes struct {
	Message string `json:"message"`
}

// ErrorRes is a generic error response.
type ErrorRes struct {
	Error string `json:"error"`
}
