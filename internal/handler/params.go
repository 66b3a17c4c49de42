package handler

import (
	"net/http"
	"strconv"

	"edusite/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// pageParams reads page/limit query parameters. Unparseable values
// fall through to zero and get clamped by the service layer.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// idParam reads the {id} URL parameter.
func idParam(r *http.Request) (int64, *middleware.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, &middleware.AppError{Error: err, Message: "Invalid id", Code: http.StatusBadRequest, Kind: middleware.CodeValidation}
	}
	return id, nil
}

// int64Query reads an optional numeric query parameter, zero when absent.
func int64Query(r *http.Request, name string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	return v
}

// boolQuery reads an optional boolean query parameter, nil when absent.
func boolQuery(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
