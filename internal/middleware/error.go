package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"edusite/internal/logger"
)

// Stable machine-checkable error codes returned in API error bodies.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeDecode       = "DECODE_ERROR"
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeForbidden    = "FORBIDDEN"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeInternal     = "INTERNAL"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Code    int    // HTTP status
	Kind    string // machine-checkable error code
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// Error is a middleware that converts handler errors into JSON error
// responses with stable codes, and recovers panics.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					writeError(w, http.StatusInternalServerError, CodeInternal, "Internal Server Error")
				}
			}()

			err := next(w, r)
			if err != nil {
				kind := err.Kind
				if kind == "" {
					kind = CodeInternal
				}
				log.Error(err.Error, err.Message)
				writeError(w, err.Code, kind, err.Message)
			}
		})
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
