package handler

import (
	"context"
	"net/http"

	mw "edusite/internal/middleware"
	"edusite/internal/service"
)

// ContactManager is the contact service surface the handler needs.
type ContactManager interface {
	Submit(ctx context.Context, in service.ContactInput) error
	List(ctx context.Context, page, limit int) (*service.ContactMessageList, error)
}

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	contact ContactManager
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contact ContactManager) *ContactHandler {
	return &ContactHandler{contact: contact}
}

func (h *ContactHandler) submit(w http.ResponseWriter, r *http.Request) *mw.AppError {
	var in service.ContactInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	if err := h.contact.Submit(r.Context(), in); err != nil {
		return apiError(err, "Failed to submit message")
	}
	return writeJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}

func (h *ContactHandler) adminList(w http.ResponseWriter, r *http.Request) *mw.AppError {
	page, limit := pageParams(r)
	list, err := h.contact.List(r.Context(), page, limit)
	if err != nil {
		return apiError(err, "Failed to list messages")
	}
	return writeJSON(w, http.StatusOK, list)
}
