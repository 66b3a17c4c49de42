package handler

import (
	"context"
	"net/http"

	mw "edusite/internal/middleware"
	"edusite/internal/service"
)

// LookupManager is the lookup service surface the handler needs.
type LookupManager interface {
	Bundle(ctx context.Context, language string) (*service.LookupBundle, error)
	Countries(ctx context.Context, language string, includeInactive bool) ([]*service.LookupView, error)
	Cities(ctx context.Context, countryID int64, language string, includeInactive bool) ([]*service.LookupView, error)
	GradeLevels(ctx context.Context, language string, includeInactive bool) ([]*service.LookupView, error)
	ProgramTypes(ctx context.Context, language string, includeInactive bool) ([]*service.LookupView, error)
	CreateCountry(ctx context.Context, in service.LookupInput) (int64, error)
	UpdateCountry(ctx context.Context, id int64, in service.LookupInput) error
	DeleteCountry(ctx context.Context, id int64) error
	CreateCity(ctx context.Context, in service.LookupInput) (int64, error)
	UpdateCity(ctx context.Context, id int64, in service.LookupInput) error
	DeleteCity(ctx context.Context, id int64) error
	CreateGradeLevel(ctx context.Context, in service.LookupInput) (int64, error)
	UpdateGradeLevel(ctx context.Context, id int64, in service.LookupInput) error
	DeleteGradeLevel(ctx context.Context, id int64) error
	CreateProgramType(ctx context.Context, in service.LookupInput) (int64, error)
	UpdateProgramType(ctx context.Context, id int64, in service.LookupInput) error
	DeleteProgramType(ctx context.Context, id int64) error
}

// LookupHandler serves the public lookup bundle and admin lookup CRUD.
type LookupHandler struct {
	lookups   LookupManager
	canonical string
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(lookups LookupManager, canonical string) *LookupHandler {
	return &LookupHandler{lookups: lookups, canonical: canonical}
}

func (h *LookupHandler) bundle(w http.ResponseWriter, r *http.Request) *mw.AppError {
	bundle, err := h.lookups.Bundle(r.Context(), mw.GetLanguage(r.Context(), h.canonical))
	if err != nil {
		return apiError(err, "Failed to load lookups")
	}
	return writeJSON(w, http.StatusOK, bundle)
}

// adminTable lists one lookup table unfiltered for the back-office.
func (h *LookupHandler) adminTable(list func(context.Context, string, bool) ([]*service.LookupView, error)) mw.AppHandler {
	return func(w http.ResponseWriter, r *http.Request) *mw.AppError {
		rows, err := list(r.Context(), h.canonical, true)
		if err != nil {
			return apiError(err, "Failed to list lookup rows")
		}
		return writeJSON(w, http.StatusOK, rows)
	}
}

func (h *LookupHandler) adminCities(w http.ResponseWriter, r *http.Request) *mw.AppError {
	rows, err := h.lookups.Cities(r.Context(), int64Query(r, "countryId"), h.canonical, true)
	if err != nil {
		return apiError(err, "Failed to list cities")
	}
	return writeJSON(w, http.StatusOK, rows)
}

// create wraps a lookup create function into a handler.
func (h *LookupHandler) create(save func(context.Context, service.LookupInput) (int64, error)) mw.AppHandler {
	return func(w http.ResponseWriter, r *http.Request) *mw.AppError {
		var in service.LookupInput
		if appErr := decodeBody(r, &in); appErr != nil {
			return appErr
		}
		id, err := save(r.Context(), in)
		if err != nil {
			return apiError(err, "Failed to create lookup row")
		}
		return writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
	}
}

// update wraps a lookup update function into a handler.
func (h *LookupHandler) update(save func(context.Context, int64, service.LookupInput) error) mw.AppHandler {
	return func(w http.ResponseWriter, r *http.Request) *mw.AppError {
		id, appErr := idParam(r)
		if appErr != nil {
			return appErr
		}
		var in service.LookupInput
		if appErr := decodeBody(r, &in); appErr != nil {
			return appErr
		}
		if err := save(r.Context(), id, in); err != nil {
			return apiError(err, "Failed to update lookup row")
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}

// remove wraps a lookup delete function into a handler.
func (h *LookupHandler) remove(del func(context.Context, int64) error) mw.AppHandler {
	return func(w http.ResponseWriter, r *http.Request) *mw.AppError {
		id, appErr := idParam(r)
		if appErr != nil {
			return appErr
		}
		if err := del(r.Context(), id); err != nil {
			return apiError(err, "Failed to delete lookup row")
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}
