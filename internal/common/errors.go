// Package common defines shared constants and sentinel errors used across
// client and server layers of letshang. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors. Everything below wraps ErrorValidation.
	ErrorValidation        = errors.New("validation error")
	ErrorMissingField      = fmt.Errorf("%w: missing required field", ErrorValidation)
	ErrorEmptyContent      = fmt.Errorf("%w: content must not be empty", ErrorValidation)
	ErrorInvalidStatus     = fmt.Errorf("%w: invalid status", ErrorValidation)
	ErrorInvalidType       = fmt.Errorf("%w: invalid type", ErrorValidation)
	ErrorInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrorValidation)

	// Hang lifecycle errors.
	ErrorHangNotActive = errors.New("hang is not active")

	// Identity errors.
	ErrorProfileIncomplete = errors.New("profile incomplete: display name is not set")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

// MissingField returns an error wrapping ErrorMissingField that names the field.
func MissingField(name string) error {
	return fmt.Errorf("%w: %s", ErrorMissingField, name)
}
