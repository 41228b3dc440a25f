package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that a course, school or material was not found.
	ErrNotFound = errors.New("not found")

	// ErrNoVersion indicates that a course exists but has no material versions.
	ErrNoVersion = errors.New("course has no material versions")

	// ErrNothingToApprove indicates that the latest version has no materials.
	ErrNothingToApprove = errors.New("nothing to approve")

	// ErrConflict indicates that the document changed between read and write.
	ErrConflict = errors.New("concurrent modification")

	// ErrInvalidInput indicates that a request payload was rejected.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExternalLookup indicates that an external catalog lookup failed.
	ErrExternalLookup = errors.New("external lookup failed")

	// ErrUnavailable indicates that an optional backend (bucket, database) is not configured.
	ErrUnavailable = errors.New("backend unavailable")
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
	Key      string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound creates a new NotFoundError.
func NotFound(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// ValidationError represents a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid creates a new ValidationError.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ExternalLookupError wraps a failure of an external catalog.
type ExternalLookupError struct {
	Source string
	Term   string
	Err    error
}

// Error implements the error interface.
func (e *ExternalLookupError) Error() string {
	return fmt.Sprintf("%s lookup for %q failed: %v", e.Source, e.Term, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExternalLookupError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *ExternalLookupError) Is(target error) bool {
	return target == ErrExternalLookup
}

// StatusCode maps an error to the HTTP status a handler should answer with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoVersion), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNothingToApprove), errors.Is(err, ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
