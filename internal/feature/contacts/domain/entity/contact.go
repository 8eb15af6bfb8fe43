// Package entity defines the domain entities for the contacts feature.
package entity

import "time"

// Contact is an address-book entry owned by a single user. All queries are
// scoped by UserID so users can never see each other's contacts.
type Contact struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName   string `gorm:"size:50;index" json:"first_name"`
	LastName    string `gorm:"size:50;index" json:"last_name"`
	Email       string `gorm:"size:150;index" json:"email"`
	PhoneNumber string `gorm:"size:30" json:"phone_number"`

	// Birthday is optional; contacts without one are skipped by the
	// upcoming-birthday query.
	Birthday *time.Time `gorm:"type:date" json:"birthday,omitempty"`

	AdditionalInfo string `gorm:"size:500" json:"additional_info,omitempty"`

	// UserID is the owning user.
	UserID uint `gorm:"index;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
