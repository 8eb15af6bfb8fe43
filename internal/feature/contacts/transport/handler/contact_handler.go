// Package handler provides the HTTP handlers for the contacts feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/transport/http/dto"
	"contacts_backend/internal/feature/contacts/usecase"
	"contacts_backend/internal/platform/token"
)

// ContactsUsecase defines the contact operations the handlers depend on.
type ContactsUsecase interface {
	Create(ctx context.Context, userID uint, in usecase.ContactInput) (*entity.Contact, error)
	Get(ctx context.Context, userID, contactID uint) (*entity.Contact, error)
	List(ctx context.Context, userID uint, limit, offset int) ([]entity.Contact, error)
	Update(ctx context.Context, userID, contactID uint, in usecase.ContactInput) (*entity.Contact, error)
	Delete(ctx context.Context, userID, contactID uint) error
	Search(ctx context.Context, userID uint, query string) ([]entity.Contact, error)
	UpcomingBirthdays(ctx context.Context, userID uint) ([]entity.Contact, error)
}

// ContactHandler handles HTTP requests for contact management.
type ContactHandler struct {
	contacts ContactsUsecase
}

// NewContactHandler creates a new instance of ContactHandler.
func NewContactHandler(contacts ContactsUsecase) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Create stores a new contact for the authenticated user.
func (h *ContactHandler) Create(c *gin.Context) {
	user, ok := token.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
		return
	}

	var req dto.ContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create contact validation failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), user.ID, req.ToInput())
	if err != nil {
		slog.Error("create contact failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "could not create contact"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewContactRes(contact))
}

// Get returns one of the authenticated user's contacts.
func (h *ContactHandler) Get(c *gin.Context) {
	user, ok := token.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
		return
	}

	contactID, ok := contactIDParam(c)
	if !ok {
		return
	}

	contact, err := h.contacts.Get(c.Request.Context(), user.ID, contactID)
	if err != nil {
		h.renderError(c, err, user.ID, "get contact failed")
		return
	}

	c.JSON(http.StatusOK, dto.NewContactRes(contact))
}

// List returns a page of the authenticated user's contacts. Pagination is
// controlled by the optional limit and offset query parameters.
func (h *ContactHandler) List(c *gin.Context) {
	user, ok := token.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contacts, err := h.contacts.List(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		slog.Error("list contacts failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "could not list contacts"})
		return
	}

	c.JSON(http.StatusOK, dto.NewContactListRes(contacts))
}

// Update replaces the writable fields of one of the user's contacts.
func (h *ContactHandler) Update(c *gin.Context) {
	user, ok := token.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
		return
	}

	contactID, ok := contactIDParam(c)
	if !ok {
		return
	}

	var req dto.ContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update contact validation failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	contact, err := h.contacts.Update(c.Request.Context(), user.ID, contactID, req.ToInput())
	if err != nil {
		h.renderError(c, err, user.ID, "update contact failed")
		return
	}

	c.JSON(http.StatusOK, dto.NewContactRes(contact))
}

// Delete removes one of the user's contacts.
func (h *ContactHandler) Delete(c *gin.Context) {
	user, ok := token.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
		return
	}

	contactID, ok := contactIDParam(c)
	if !ok {
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), user.ID, contactID); err != nil {
		h.renderError(c, err, user.ID, "delete contact failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// Search returns the user's contacts matching the q query parameter.
func (h *ContactHandler) Search(c *gin.Context) {
	user, ok := token.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "query parameter q is required"})
		return
	}

	contacts, err := h.contacts.Search(c.Request.Context(), user.ID, query)
	if err != nil {
		slog.Error("search contacts failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "could not search contacts"})
		return
	}

	c.JSON(http.StatusOK, dto.NewContactListRes(contacts))
}

// Birthdays returns the user's contacts with a birthday in the next week.
func (h *ContactHandler) Birthdays(c *gin.Context) {
	user, ok := token.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
		return
	}

	contacts, err := h.contacts.UpcomingBirthdays(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("birthday lookup failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "could not list birthdays"})
		return
	}

	c.JSON(http.StatusOK, dto.NewContactListRes(contacts))
}

// contactIDParam parses the :id path parameter, writing a 400 on failure.
func contactIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid contact id"})
		return 0, false
	}
	return uint(id), true
}

// renderError maps usecase errors to HTTP responses for single-contact
// operations.
func (h *ContactHandler) renderError(c *gin.Context, err error, userID uint, msg string) {
	if errors.Is(err, usecase.ErrContactNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "contact not found"})
		return
	}
	slog.Error(msg, "error", err, "user_id", userID)
	c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
}
