package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"edusite/internal/data"
	"edusite/internal/i18n"
	"edusite/internal/middleware"
	"edusite/internal/service"
)

// writeJSON encodes v as the response body. Encoding failures at this
// point cannot be reported to the client anymore; they surface in logs
// through the error middleware when the handler returns one.
func writeJSON(w http.ResponseWriter, status int, v interface{}) *middleware.AppError {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

// apiError maps service and repository errors onto HTTP statuses and
// stable error codes.
func apiError(err error, message string) *middleware.AppError {
	var ve *service.ValidationError
	var de *i18n.DecodeError
	switch {
	case errors.Is(err, data.ErrNotFound):
		return &middleware.AppError{Error: err, Message: "Not found", Code: http.StatusNotFound, Kind: middleware.CodeNotFound}
	case errors.As(err, &ve):
		return &middleware.AppError{Error: err, Message: ve.Error(), Code: http.StatusBadRequest, Kind: middleware.CodeValidation}
	case errors.Is(err, data.ErrConflict):
		return &middleware.AppError{Error: err, Message: "Conflict", Code: http.StatusConflict, Kind: middleware.CodeConflict}
	case errors.As(err, &de):
		// Stored structured data failed to parse. This is our data
		// integrity problem, not the client's.
		return &middleware.AppError{Error: err, Message: "Stored data is corrupt", Code: http.StatusInternalServerError, Kind: middleware.CodeDecode}
	default:
		return &middleware.AppError{Error: err, Message: message, Code: http.StatusInternalServerError, Kind: middleware.CodeInternal}
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) *middleware.AppError {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest, Kind: middleware.CodeValidation}
	}
	return nil
}
