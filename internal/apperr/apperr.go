package apperr

import "net/http"

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error carried from the validation and store
// layers up to the HTTP boundary, where Status selects the response code.
// Fields is non-empty only for validation failures.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// NotFound reports that an identifier did not resolve to a document of the
// named resource. Malformed identifiers on lookups map here as well.
func NotFound(resource string) *Error {
	return &Error{Status: http.StatusNotFound, Message: resource + " not found"}
}

// Validation carries the full list of field failures for a rejected payload.
func Validation(fields []FieldError) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "validation failed", Fields: fields}
}

// BadRequest reports a request that could not be parsed at all.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// ReadError wraps a store read failure; the underlying message is passed
// through to the client.
func ReadError(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: cause.Error(), cause: cause}
}

// WriteError wraps a store write failure.
func WriteError(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: cause.Error(), cause: cause}
}
