// Package adapters provides concrete implementations of the contacts
// repository interfaces.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/usecase"
)

// contactPostgres implements usecase.ContactRepository backed by gorm.
type contactPostgres struct {
	db *gorm.DB
}

var _ usecase.ContactRepository = (*contactPostgres)(nil)

// NewContactPostgres creates a contact repository on top of the given DB.
func NewContactPostgres(db *gorm.DB) *contactPostgres {
	return &contactPostgres{db: db}
}

func (r *contactPostgres) Create(ctx context.Context, contact *entity.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// FindByID looks up a contact by id scoped to its owner. A contact that
// exists but belongs to another user is reported as not found.
func (r *contactPostgres) FindByID(ctx context.Context, userID, contactID uint) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", contactID, userID).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return &contact, nil
}

func (r *contactPostgres) FindAll(ctx context.Context, userID uint, limit, offset int) ([]entity.Contact, error) {
	var contacts []entity.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (r *contactPostgres) Update(ctx context.Context, contact *entity.Contact) error {
	// Save writes all columns, including ones cleared back to zero values.
	result := r.db.WithContext(ctx).
		Where("user_id = ?", contact.UserID).
		Save(contact)
	if result.Error != nil {
		return fmt.Errorf("update contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return usecase.ErrContactNotFound
	}
	return nil
}

func (r *contactPostgres) Delete(ctx context.Context, userID, contactID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", contactID, userID).
		Delete(&entity.Contact{})
	if result.Error != nil {
		return fmt.Errorf("delete contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return usecase.ErrContactNotFound
	}
	return nil
}

// Search matches the query as a case-insensitive substring of the first
// name, last name or email.
func (r *contactPostgres) Search(ctx context.Context, userID uint, query string) ([]entity.Contact, error) {
	pattern := "%" + query + "%"
	var contacts []entity.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(
			r.db.Where("LOWER(first_name) LIKE LOWER(?)", pattern).
				Or("LOWER(last_name) LIKE LOWER(?)", pattern).
				Or("LOWER(email) LIKE LOWER(?)", pattern),
		).
		Order("id").
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	return contacts, nil
}

func (r *contactPostgres) FindDated(ctx context.Context, userID uint) ([]entity.Contact, error) {
	var contacts []entity.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND birthday IS NOT NULL", userID).
		Order("id").
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("find dated contacts: %w", err)
	}
	return contacts, nil
}
