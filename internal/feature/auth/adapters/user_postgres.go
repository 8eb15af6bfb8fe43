// Package adapters provides the repository implementations for the auth
// feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/feature/auth/usecase"
)

// pgUniqueViolation is the Postgres error code for a unique constraint
// violation.
const pgUniqueViolation = "23505"

// userPostgres is the gorm implementation of the UserRepository interface.
type userPostgres struct {
	db *gorm.DB
}

// Compile-time check that userPostgres implements usecase.UserRepository.
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres creates a new userPostgres with the given gorm connection.
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create adds a user to the database. It returns
// usecase.ErrEmailAlreadyExists when the email is already registered.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email address. It returns
// usecase.ErrUserNotFound when no user matches.
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateRefreshToken overwrites the stored refresh token for the user. An
// empty token clears it.
func (r *userPostgres) UpdateRefreshToken(ctx context.Context, u *entity.User, refreshToken string) error {
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", u.ID).
		Update("refresh_token", refreshToken).Error
	if err != nil {
		return err
	}
	u.RefreshToken = refreshToken
	return nil
}

// MarkConfirmed sets the confirmed flag for the email address. Confirming an
// unknown address returns usecase.ErrUserNotFound.
func (r *userPostgres) MarkConfirmed(ctx context.Context, email string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ?", email).
		Update("confirmed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// UpdateAvatar stores the avatar URL and returns the refreshed user record.
func (r *userPostgres) UpdateAvatar(ctx context.Context, email, url string) (*entity.User, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ?", email).
		Update("avatar", url)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrUserNotFound
	}
	return r.FindByEmail(ctx, email)
}

// isDuplicateKey detects a unique-constraint violation either through gorm's
// error translation or the raw Postgres error code.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
