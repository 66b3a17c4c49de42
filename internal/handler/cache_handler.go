package handler

import (
	"net/http"

	"edusite/internal/cache"
	mw "edusite/internal/middleware"
)

// CacheAdmin is the cache surface exposed to operators.
type CacheAdmin interface {
	Clear() error
	Stats() (cache.Stats, error)
}

// CacheHandler serves the admin cache endpoints.
type CacheHandler struct {
	cache CacheAdmin
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(c CacheAdmin) *CacheHandler {
	return &CacheHandler{cache: c}
}

func (h *CacheHandler) clear(w http.ResponseWriter, r *http.Request) *mw.AppError {
	if err := h.cache.Clear(); err != nil {
		return &mw.AppError{Error: err, Message: "Failed to clear cache", Code: http.StatusInternalServerError}
	}
	return writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *CacheHandler) stats(w http.ResponseWriter, r *http.Request) *mw.AppError {
	stats, err := h.cache.Stats()
	if err != nil {
		return &mw.AppError{Error: err, Message: "Failed to read cache stats", Code: http.StatusInternalServerError}
	}
	return writeJSON(w, http.StatusOK, stats)
}
