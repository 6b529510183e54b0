// internal/pkg/apperr/errors.go
package apperr

import "errors"

// Sentinel errors shared across domains. Handlers map these onto the HTTP
// surface: ErrNotFound -> 404, ErrValidation -> 400 with the request state
// preserved, ErrUnauthorized -> redirect to the login entry point,
// ErrDuplicateSubmission -> non-fatal inline message.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("validation failed")
	ErrUnauthorized        = errors.New("authentication required")
	ErrDuplicateSubmission = errors.New("duplicate submission")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err wraps ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsDuplicate reports whether err wraps ErrDuplicateSubmission.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateSubmission)
}
