package handler

import (
	"context"
	"net/http"

	mw "edusite/internal/middleware"
	"edusite/internal/service"

	"github.com/go-chi/chi/v5"
)

// ProgramManager is the program service surface the handler needs.
type ProgramManager interface {
	List(ctx context.Context, p service.ListProgramsParams) (*service.ProgramList, error)
	GetBySlug(ctx context.Context, slug, language string) (*service.ProgramView, error)
	AdminGet(ctx context.Context, id int64) (*service.ProgramView, error)
	Create(ctx context.Context, in service.ProgramInput) (*service.ProgramView, error)
	Update(ctx context.Context, id int64, in service.ProgramInput) (*service.ProgramView, error)
	Delete(ctx context.Context, id int64) error
}

// ProgramHandler serves public and admin program endpoints.
type ProgramHandler struct {
	programs  ProgramManager
	canonical string
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programs ProgramManager, canonical string) *ProgramHandler {
	return &ProgramHandler{programs: programs, canonical: canonical}
}

func (h *ProgramHandler) list(w http.ResponseWriter, r *http.Request) *mw.AppError {
	page, limit := pageParams(r)
	list, err := h.programs.List(r.Context(), service.ListProgramsParams{
		Language:  mw.GetLanguage(r.Context(), h.canonical),
		Page:      page,
		Limit:     limit,
		CountryID: int64Query(r, "countryId"),
		CityID:    int64Query(r, "cityId"),
		Featured:  boolQuery(r, "featured"),
	})
	if err != nil {
		return apiError(err, "Failed to list programs")
	}
	return writeJSON(w, http.StatusOK, list)
}

func (h *ProgramHandler) get(w http.ResponseWriter, r *http.Request) *mw.AppError {
	view, err := h.programs.GetBySlug(r.Context(), chi.URLParam(r, "slug"), mw.GetLanguage(r.Context(), h.canonical))
	if err != nil {
		return apiError(err, "Failed to load program")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *ProgramHandler) adminList(w http.ResponseWriter, r *http.Request) *mw.AppError {
	page, limit := pageParams(r)
	list, err := h.programs.List(r.Context(), service.ListProgramsParams{
		Language:      h.canonical,
		Page:          page,
		Limit:         limit,
		Status:        r.URL.Query().Get("status"),
		CountryID:     int64Query(r, "countryId"),
		CityID:        int64Query(r, "cityId"),
		Featured:      boolQuery(r, "featured"),
		IncludeDrafts: true,
	})
	if err != nil {
		return apiError(err, "Failed to list programs")
	}
	return writeJSON(w, http.StatusOK, list)
}

func (h *ProgramHandler) adminGet(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	view, err := h.programs.AdminGet(r.Context(), id)
	if err != nil {
		return apiError(err, "Failed to load program")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *ProgramHandler) create(w http.ResponseWriter, r *http.Request) *mw.AppError {
	var in service.ProgramInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	view, err := h.programs.Create(r.Context(), in)
	if err != nil {
		return apiError(err, "Failed to create program")
	}
	return writeJSON(w, http.StatusCreated, view)
}

func (h *ProgramHandler) update(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	var in service.ProgramInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	view, err := h.programs.Update(r.Context(), id, in)
	if err != nil {
		return apiError(err, "Failed to update program")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *ProgramHandler) delete(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	if err := h.programs.Delete(r.Context(), id); err != nil {
		return apiError(err, "Failed to delete program")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
