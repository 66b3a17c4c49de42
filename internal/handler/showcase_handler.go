package handler

import (
	"context"
	"net/http"

	mw "edusite/internal/middleware"
	"edusite/internal/service"
)

// ShowcaseManager is the showcase service surface the handler needs.
type ShowcaseManager interface {
	ListTestimonials(ctx context.Context, p service.ListShowcaseParams) (*service.TestimonialList, error)
	GetTestimonial(ctx context.Context, id int64) (*service.TestimonialView, error)
	CreateTestimonial(ctx context.Context, in service.TestimonialInput) (*service.TestimonialView, error)
	UpdateTestimonial(ctx context.Context, id int64, in service.TestimonialInput) (*service.TestimonialView, error)
	DeleteTestimonial(ctx context.Context, id int64) error

	ListFAQs(ctx context.Context, p service.ListShowcaseParams) (*service.FAQList, error)
	GetFAQ(ctx context.Context, id int64) (*service.FAQView, error)
	CreateFAQ(ctx context.Context, in service.FAQInput) (*service.FAQView, error)
	UpdateFAQ(ctx context.Context, id int64, in service.FAQInput) (*service.FAQView, error)
	DeleteFAQ(ctx context.Context, id int64) error

	ListVideos(ctx context.Context, p service.ListShowcaseParams) (*service.VideoList, error)
	GetVideo(ctx context.Context, id int64) (*service.VideoView, error)
	CreateVideo(ctx context.Context, in service.VideoInput) (*service.VideoView, error)
	UpdateVideo(ctx context.Context, id int64, in service.VideoInput) (*service.VideoView, error)
	DeleteVideo(ctx context.Context, id int64) error
}

// ShowcaseHandler serves testimonial, FAQ and video endpoints.
type ShowcaseHandler struct {
	showcase  ShowcaseManager
	canonical string
}

// NewShowcaseHandler creates a new ShowcaseHandler.
func NewShowcaseHandler(showcase ShowcaseManager, canonical string) *ShowcaseHandler {
	return &ShowcaseHandler{showcase: showcase, canonical: canonical}
}

func (h *ShowcaseHandler) publicParams(r *http.Request) service.ListShowcaseParams {
	page, limit := pageParams(r)
	return service.ListShowcaseParams{
		Language: mw.GetLanguage(r.Context(), h.canonical),
		Page:     page,
		Limit:    limit,
		Category: r.URL.Query().Get("category"),
	}
}

func (h *ShowcaseHandler) adminParams(r *http.Request) service.ListShowcaseParams {
	page, limit := pageParams(r)
	return service.ListShowcaseParams{
		Language:      h.canonical,
		Page:          page,
		Limit:         limit,
		Status:        r.URL.Query().Get("status"),
		Category:      r.URL.Query().Get("category"),
		IncludeDrafts: true,
	}
}

// --- Testimonials ---

func (h *ShowcaseHandler) listTestimonials(w http.ResponseWriter, r *http.Request) *mw.AppError {
	list, err := h.showcase.ListTestimonials(r.Context(), h.publicParams(r))
	if err != nil {
		return apiError(err, "Failed to list testimonials")
	}
	return writeJSON(w, http.StatusOK, list)
}

func (h *ShowcaseHandler) adminListTestimonials(w http.ResponseWriter, r *http.Request) *mw.AppError {
	list, err := h.showcase.ListTestimonials(r.Context(), h.adminParams(r))
	if err != nil {
		return apiError(err, "Failed to list testimonials")
	}
	return writeJSON(w, http.StatusOK, list)
}

func (h *ShowcaseHandler) getTestimonial(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	view, err := h.showcase.GetTestimonial(r.Context(), id)
	if err != nil {
		return apiError(err, "Failed to load testimonial")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *ShowcaseHandler) createTestimonial(w http.ResponseWriter, r *http.Request) *mw.AppError {
	var in service.TestimonialInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	view, err := h.showcase.CreateTestimonial(r.Context(), in)
	if err != nil {
		return apiError(err, "Failed to create testimonial")
	}
	return writeJSON(w, http.StatusCreated, view)
}

func (h *ShowcaseHandler) updateTestimonial(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	var in service.TestimonialInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	view, err := h.showcase.UpdateTestimonial(r.Context(), id, in)
	if err != nil {
		return apiError(err, "Failed to update testimonial")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *ShowcaseHandler) deleteTestimonial(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	if err := h.showcase.DeleteTestimonial(r.Context(), id); err != nil {
		return apiError(err, "Failed to delete testimonial")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// --- FAQs ---

func (h *ShowcaseHandler) listFAQs(w http.ResponseWriter, r *http.Request) *mw.AppError {
	list, err := h.showcase.ListFAQs(r.Context(), h.publicParams(r))
	if err != nil {
		return apiError(err, "Failed to list FAQs")
	}
	return writeJSON(w, http.StatusOK, list)
}

func (h *ShowcaseHandler) adminListFAQs(w http.ResponseWriter, r *http.Request) *mw.AppError {
	list, err := h.showcase.ListFAQs(r.Context(), h.adminParams(r))
	if err != nil {
		return apiError(err, "Failed to list FAQs")
	}
	return writeJSON(w, http.StatusOK, list)
}

func (h *ShowcaseHandler) getFAQ(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	view, err := h.showcase.GetFAQ(r.Context(), id)
	if err != nil {
		return apiError(err, "Failed to load FAQ")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *ShowcaseHandler) createFAQ(w http.ResponseWriter, r *http.Request) *mw.AppError {
	var in service.FAQInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	view, err := h.showcase.CreateFAQ(r.Context(), in)
	if err != nil {
		return apiError(err, "Failed to create FAQ")
	}
	return writeJSON(w, http.StatusCreated, view)
}

func (h *ShowcaseHandler) updateFAQ(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	var in service.FAQInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	view, err := h.showcase.UpdateFAQ(r.Context(), id, in)
	if err != nil {
		return apiError(err, "Failed to update FAQ")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *ShowcaseHandler) deleteFAQ(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	if err := h.showcase.DeleteFAQ(r.Context(), id); err != nil {
		return apiError(err, "Failed to delete FAQ")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// --- Videos ---

func (h *ShowcaseHandler) listVideos(w http.ResponseWriter, r *http.Request) *mw.AppError {
	list, err := h.showcase.ListVideos(r.Context(), h.publicParams(r))
	if err != nil {
		return apiError(err, "Failed to list videos")
	}
	return writeJSON(w, http.StatusOK, list)
}

func (h *ShowcaseHandler) adminListVideos(w http.ResponseWriter, r *http.Request) *mw.AppError {
	list, err := h.showcase.ListVideos(r.Context(), h.adminParams(r))
	if err != nil {
		return apiError(err, "Failed to list videos")
	}
	return writeJSON(w, http.StatusOK, list)
}

func (h *ShowcaseHandler) getVideo(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	view, err := h.showcase.GetVideo(r.Context(), id)
	if err != nil {
		return apiError(err, "Failed to load video")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *ShowcaseHandler) createVideo(w http.ResponseWriter, r *http.Request) *mw.AppError {
	var in service.VideoInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	view, err := h.showcase.CreateVideo(r.Context(), in)
	if err != nil {
		return apiError(err, "Failed to create video")
	}
	return writeJSON(w, http.StatusCreated, view)
}

func (h *ShowcaseHandler) updateVideo(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	var in service.VideoInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	view, err := h.showcase.UpdateVideo(r.Context(), id, in)
	if err != nil {
		return apiError(err, "Failed to update video")
	}
	return writeJSON(w, http.StatusOK, view)
}

func (h *ShowcaseHandler) deleteVideo(w http.ResponseWriter, r *http.Request) *mw.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	if err := h.showcase.DeleteVideo(r.Context(), id); err != nil {
		return apiError(err, "Failed to delete video")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
