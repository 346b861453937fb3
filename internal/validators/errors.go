package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidUsername    = errors.New("username must be 3-32 characters of letters, digits, '.', '_' or '-'")
	ErrInvalidName        = errors.New("name must be 1-100 characters")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidIdentifier  = errors.New("email or username is required")
	ErrPasswordIsRequired = errors.New("password is required")
)

// FieldError is a validation failure attributed to a single input field.
// It unwraps to the sentinel describing the failure, so callers can match
// either on the field or with [errors.Is].
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
