// Package usecase implements the business logic for the contacts feature.
package usecase

import (
	"context"
	"errors"
	"time"

	"contacts_backend/internal/feature/contacts/domain/entity"
)

const (
	// defaultLimit caps list queries when the caller does not paginate.
	defaultLimit = 100
	// birthdayWindowDays is how far ahead the upcoming-birthday query looks.
	birthdayWindowDays = 7
)

// ErrContactNotFound is returned when a contact does not exist or belongs to
// a different user; the two cases are indistinguishable on purpose.
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository abstracts the persistence layer for contact entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	FindByID(ctx context.Context, userID, contactID uint) (*entity.Contact, error)
	FindAll(ctx context.Context, userID uint, limit, offset int) ([]entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, userID, contactID uint) error
	Search(ctx context.Context, userID uint, query string) ([]entity.Contact, error)
	// FindDated returns the user's contacts that have a birthday set.
	FindDated(ctx context.Context, userID uint) ([]entity.Contact, error)
}

// ContactInput carries the writable contact fields. Updates copy them onto
// the stored record field by field; nothing else from the request body is
// ever persisted.
type ContactInput struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	Birthday       *time.Time
	AdditionalInfo string
}

// contactsUsecase implements the contact management business logic.
type contactsUsecase struct {
	contacts ContactRepository
}

// NewContactsUsecase creates a new instance of contactsUsecase.
func NewContactsUsecase(contacts ContactRepository) *contactsUsecase {
	return &contactsUsecase{contacts: contacts}
}

// Create stores a new contact for the user.
func (u *contactsUsecase) Create(ctx context.Context, userID uint, in ContactInput) (*entity.Contact, error) {
	contact := &entity.Contact{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PhoneNumber:    in.PhoneNumber,
		Birthday:       in.Birthday,
		AdditionalInfo: in.AdditionalInfo,
		UserID:         userID,
	}
	if err := u.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Get returns one of the user's contacts.
func (u *contactsUsecase) Get(ctx context.Context, userID, contactID uint) (*entity.Contact, error) {
	return u.contacts.FindByID(ctx, userID, contactID)
}

// List returns a page of the user's contacts. A non-positive or oversized
// limit falls back to the default page size.
func (u *contactsUsecase) List(ctx context.Context, userID uint, limit, offset int) ([]entity.Contact, error) {
	if limit <= 0 || limit > defaultLimit {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return u.contacts.FindAll(ctx, userID, limit, offset)
}

// Update overwrites the writable fields of an existing contact.
func (u *contactsUsecase) Update(ctx context.Context, userID, contactID uint, in ContactInput) (*entity.Contact, error) {
	contact, err := u.contacts.FindByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	contact.FirstName = in.FirstName
	contact.LastName = in.LastName
	contact.Email = in.Email
	contact.PhoneNumber = in.PhoneNumber
	contact.Birthday = in.Birthday
	contact.AdditionalInfo = in.AdditionalInfo

	if err := u.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete removes one of the user's contacts.
func (u *contactsUsecase) Delete(ctx context.Context, userID, contactID uint) error {
	return u.contacts.Delete(ctx, userID, contactID)
}

// Search returns the user's contacts whose first name, last name or email
// contains the query substring.
func (u *contactsUsecase) Search(ctx context.Context, userID uint, query string) ([]entity.Contact, error) {
	return u.contacts.Search(ctx, userID, query)
}

// UpcomingBirthdays returns the user's contacts whose birthday falls within
// the next seven days, including today. The comparison uses month and day
// only and handles windows that wrap past the end of the year.
func (u *contactsUsecase) UpcomingBirthdays(ctx context.Context, userID uint) ([]entity.Contact, error) {
	dated, err := u.contacts.FindDated(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	var upcoming []entity.Contact
	for _, c := range dated {
		if c.Birthday != nil && birthdayInWindow(*c.Birthday, today, birthdayWindowDays) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

// birthdayInWindow reports whether the month-day of birthday falls within
// [from, from+days].
func birthdayInWindow(birthday, from time.Time, days int) bool {
	for i := 0; i <= days; i++ {
		day := from.AddDate(0, 0, i)
		if birthday.Month() == day.Month() && birthday.Day() == day.Day() {
			return true
		}
	}
	return false
}
