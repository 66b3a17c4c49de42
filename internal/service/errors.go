package service

import "fmt"

// ValidationError reports a missing or malformed field on a write.
// Handlers map it to HTTP 400 with the VALIDATION_ERROR code.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}
