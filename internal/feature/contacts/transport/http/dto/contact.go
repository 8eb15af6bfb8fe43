// Package dto defines request and response shapes for the contacts API.
package dto

import (
	"time"

	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/usecase"
)

// dateLayout is the wire format for birthdays.
const dateLayout = "2006-01-02"

// ContactReq is the request body for creating or replacing a contact.
type ContactReq struct {
	FirstName      string `json:"first_name" binding:"required,max=50"`
	LastName       string `json:"last_name" binding:"max=50"`
	Email          string `json:"email" binding:"omitempty,email,max=150"`
	PhoneNumber    string `json:"phone_number" binding:"max=30"`
	Birthday       string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	AdditionalInfo string `json:"additional_info" binding:"max=500"`
}

// ToInput converts the request into usecase input. The binding tag has
// already validated the birthday format, so the parse cannot fail here.
func (r ContactReq) ToInput() usecase.ContactInput {
	in := usecase.ContactInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		PhoneNumber:    r.PhoneNumber,
		AdditionalInfo: r.AdditionalInfo,
	}
	if r.Birthday != "" {
		if d, err := time.Parse(dateLayout, r.Birthday); err == nil {
			in.Birthday = &d
		}
	}
	return in
}

// ContactRes is a single contact in API responses.
type ContactRes struct {
	ID             uint   `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Birthday       string `json:"birthday,omitempty"`
	AdditionalInfo string `json:"additional_info"`
}

// NewContactRes maps a contact entity into its response shape.
func NewContactRes(c *entity.Contact) ContactRes {
	res := ContactRes{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		PhoneNumber:    c.PhoneNumber,
		AdditionalInfo: c.AdditionalInfo,
	}
	if c.Birthday != nil {
		res.Birthday = c.Birthday.Format(dateLayout)
	}
	return res
}

// ErrorRes is the generic error response body.
type ErrorRes struct {
	Error string `json:"error"`
}

// NewContactListRes maps a slice of contacts, returning an empty slice
// rather than null for no results.
func NewContactListRes(contacts []entity.Contact) []ContactRes {
	out := make([]ContactRes, 0, len(contacts))
	for i := range contacts {
		out = append(out, NewContactRes(&contacts[i]))
	}
	return out
}
