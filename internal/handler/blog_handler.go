package handler

import (
	"context"
	"net/http"

	mw "edusite/internal/middleware"
	"edusite/internal/service"

	"github.com/go-chi/chi/v5"
)

// BlogManager is the blog service surface the handler needs.
type BlogManager interface {
	List(ctx context.Context, p service.ListBlogsParams) (*service.BlogList, error)
	GetBySlug(ctx context.Context, slug, language string) (*service.BlogView, error)
	AdminGet(ctx context.Context, id int64) (*service.BlogView, error)
	Create(ctx context.Context, in service.BlogInput) (*service.BlogView, error)
	Update(ctx context.Context, id int64, in service.BlogInput) (*service.BlogView, error)
	Delete(ctx context.Context, id int64) error
}

// BlogHandler serves public and admin blog endpoints.
type BlogHandler struct {
	blogs     BlogManager
	canonical string
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogs BlogManager, canonical string) *BlogHandler {
	return &BlogHandler{blogs: blogs, canonical: canonical}
}

func (h *BlogHandler) list(w http.ResponseWriter, r *http.Request) *mw.AppError {
	page, limit := pageParams(r)
	list, err := h.blogs.List(r.Context(), service.ListBlogsParams{
		Language: mw.GetLanguage(r.Context(), h.canonical),
		Page:     page,
		Limit:    limit,
		Tag:      r.URL.Query().Get("tag"),
	})
	if err != nil {
		return apiError(err, "Failed to list blog posts")
	}
	return writeJSON(w, http.StatusOK, list)
}

func (h *BlogHandler) get(w http.ResponseWriter, r *http.Request) *mw.AppError {
	view, err := h.blogs.GetBySlug(r.Context(), chi.URLParam(r, "slug"), mw.GetLanguage(r.Context(), h.canonical))
	if err != nil {
		return apiError(err, "Failed to load blog post")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *BlogHandler) adminList(w http.ResponseWriter, r *http.Request) *mw.AppError {
	page, limit := pageParams(r)
	list, err := h.blogs.List(r.Context(), service.ListBlogsParams{
		Language:      h.canonical,
		Page:          page,
		Limit:         limit,
		Status:        r.URL.Query().Get("status"),
		Tag:           r.URL.Query().Get("tag"),
		IncludeDrafts: true,
	})
	if err != nil {
		return apiError(err, "Failed to list blog posts")
	}
	return writeJSON(w, http.StatusOK, list)
}

func (h *BlogHandler) adminGet(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	view, err := h.blogs.AdminGet(r.Context(), id)
	if err != nil {
		return apiError(err, "Failed to load blog post")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *BlogHandler) create(w http.ResponseWriter, r *http.Request) *mw.AppError {
	var in service.BlogInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	view, err := h.blogs.Create(r.Context(), in)
	if err != nil {
		return apiError(err, "Failed to create blog post")
	}
	return writeJSON(w, http.StatusCreated, view)
}

func (h *BlogHandler) update(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	var in service.BlogInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	view, err := h.blogs.Update(r.Context(), id, in)
	if err != nil {
		return apiError(err, "Failed to update blog post")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *BlogHandler) delete(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	if err := h.blogs.Delete(r.Context(), id); err != nil {
		return apiError(err, "Failed to delete blog post")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
