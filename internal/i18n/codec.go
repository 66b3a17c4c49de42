package i18n

import (
	"encoding/json"
	"fmt"
)

// DecodeError reports a stored structured field that fails to parse.
// This is a data-integrity problem, not a user error, so callers are
// expected to surface it loudly rather than coerce the value to empty.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode field %q: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeList parses a JSON-encoded string array stored in a text
// column. An empty stored value decodes to an empty slice, never nil,
// so API responses always render [] instead of null.
func DecodeList(field, stored string) ([]string, error) {
	if stored == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(stored), &out); err != nil {
		return nil, &DecodeError{Field: field, Err: err}
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// EncodeList is the inverse of DecodeList. A nil slice encodes to the
// empty string, which repositories store as NULL.
func EncodeList(values []string) (string, error) {
	if values == nil {
		return "", nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeRaw validates a stored JSON document (itinerary days, session
// windows, gallery entries) and hands it to the response encoder
// untouched. Empty stored values decode to an empty array.
func DecodeRaw(field, stored string) (json.RawMessage, error) {
	if stored == "" {
		return json.RawMessage("[]"), nil
	}
	if !json.Valid([]byte(stored)) {
		return nil, &DecodeError{Field: field, Err: fmt.Errorf("invalid JSON")}
	}
	return json.RawMessage(stored), nil
}

// EncodeRaw is the inverse of DecodeRaw for write paths that accept
// arbitrary structured payloads.
func EncodeRaw(field string, value json.RawMessage) (string, error) {
	if len(value) == 0 {
		return "", nil
	}
	if !json.Valid(value) {
		return "", &DecodeError{Field: field, Err: fmt.Errorf("invalid JSON")}
	}
	return string(value), nil
}
