// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

// Field names accepted by [UserValidator.Validate] for field-level scoping.
// They double as the Field of the returned [FieldError].
const (
	FieldEmail      = "email"
	FieldUsername   = "username"
	FieldName       = "name"
	FieldPassword   = "password"
	FieldRole       = "role"
	FieldIdentifier = "identifier"
)

// Length limits for account fields.
const (
	usernameMinLen = 3
	usernameMaxLen = 32
	nameMaxLen     = 100
	emailMaxLen    = 254

	// PasswordMinLen is the shortest password accepted for new credentials.
	PasswordMinLen = 8

	// PasswordMaxLen caps the input fed to the KDF.
	PasswordMaxLen = 256
)

// UserValidator validates account input: [models.NewUser],
// [models.LoginRequest] and [models.Role].
//
// Values are expected to be normalized (trimmed, lowercased where
// applicable) before validation.
type UserValidator struct{}

// NewUserValidator returns a [Validator] for account input.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate implements [Validator]. With no fields every rule for the value's
// type is applied; otherwise only the named fields are checked.
func (v *UserValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch val := value.(type) {
	case models.NewUser:
		return v.validateNewUser(val, fields...)
	case *models.NewUser:
		if val == nil {
			return ErrUnsupportedType
		}
		return v.validateNewUser(*val, fields...)
	case models.LoginRequest:
		return v.validateLoginRequest(val)
	case models.Role:
		if !val.Valid() {
			return fieldError(FieldRole, ErrInvalidRole)
		}
		return nil
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateNewUser(user models.NewUser, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldUsername, FieldName, FieldPassword, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !validEmail(user.Email) {
				return fieldError(FieldEmail, ErrInvalidEmail)
			}
		case FieldUsername:
			if !validUsername(user.Username) {
				return fieldError(FieldUsername, ErrInvalidUsername)
			}
		case FieldName:
			if n := utf8.RuneCountInString(user.Name); n == 0 || n > nameMaxLen {
				return fieldError(FieldName, ErrInvalidName)
			}
		case FieldPassword:
			if err := ValidatePassword(user.Password); err != nil {
				return err
			}
		case FieldRole:
			// empty role falls back to the default
			if user.Role != "" && !user.Role.Valid() {
				return fieldError(FieldRole, ErrInvalidRole)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateLoginRequest(req models.LoginRequest) error {
	if strings.TrimSpace(req.Identifier) == "" {
		return fieldError(FieldIdentifier, ErrInvalidIdentifier)
	}
	if req.Password == "" {
		return fieldError(FieldPassword, ErrPasswordIsRequired)
	}
	if utf8.RuneCountInString(req.Password) > PasswordMaxLen {
		return fieldError(FieldPassword, ErrPasswordTooLong)
	}
	return nil
}

// ValidatePassword checks the length rules for a new password.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	switch {
	case n < PasswordMinLen:
		return fieldError(FieldPassword, ErrPasswordTooShort)
	case n > PasswordMaxLen:
		return fieldError(FieldPassword, ErrPasswordTooLong)
	}
	return nil
}

func validEmail(email string) bool {
	if email == "" || len(email) > emailMaxLen || strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	// reject display-name forms like "Bob <bob@example.com>"
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	_, domain, _ := strings.Cut(email, "@")
	return domain != ""
}

func validUsername(username string) bool {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return false
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
