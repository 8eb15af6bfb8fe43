// Package token issues and validates the signed tokens used by the auth
// subsystem. Every token carries its kind in the scope claim, and decoding
// always states which kind it expects; a refresh token can therefore never be
// replayed as an access token, nor a confirmation link used as a credential.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"contacts_backend/internal/platform/config"
)

// Kind tags a token with the operation it is valid for.
type Kind string

const (
	// KindAccess marks short-lived tokens presented on authenticated requests.
	KindAccess Kind = "access_token"
	// KindRefresh marks long-lived tokens presented to the refresh endpoint.
	KindRefresh Kind = "refresh_token"
	// KindEmail marks medium-lived tokens embedded in confirmation links.
	KindEmail Kind = "email_token"
)

var (
	// ErrInvalidToken is returned when a token is malformed, has a bad
	// signature, or carries no subject.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token has expired")

	// ErrWrongTokenKind is returned when a valid token is presented for an
	// operation expecting a different kind.
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// Claims is the signed payload: registered claims plus the kind tag.
type Claims struct {
	jwt.RegisteredClaims
	Scope Kind `json:"scope"`
}

// Service signs and verifies tokens with a process-wide HMAC secret.
// It is constructed from config once at startup and is safe for concurrent use.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	emailTTL   time.Duration
}

// NewService creates a Service from the token configuration.
func NewService(cfg config.Token) *Service {
	return &Service{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		emailTTL:   cfg.EmailTTL,
	}
}

// CreateAccessToken issues a short-lived access token for the subject email.
func (s *Service) CreateAccessToken(subject string) (string, error) {
	return s.create(subject, KindAccess, s.accessTTL)
}

// CreateRefreshToken issues a long-lived refresh token for the subject email.
func (s *Service) CreateRefreshToken(subject string) (string, error) {
	return s.create(subject, KindRefresh, s.refreshTTL)
}

// CreateEmailToken issues a confirmation token for the subject email.
func (s *Service) CreateEmailToken(subject string) (string, error) {
	return s.create(subject, KindEmail, s.emailTTL)
}

func (s *Service) create(subject string, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti makes every token unique even within the same
			// second; refresh rotation relies on the new token
			// differing from the old one.
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: kind,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of tokenStr and checks that its
// kind matches want. On success it returns the subject email. Expected
// failures come back as ErrInvalidToken, ErrExpiredToken or ErrWrongTokenKind;
// Decode never distinguishes a bad signature from an unknown token.
func (s *Service) Decode(tokenStr string, want Kind) (string, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; anything else is treated as forged.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !tok.Valid {
		return "", ErrInvalidToken
	}
	if claims.Scope != want {
		return "", ErrWrongTokenKind
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
