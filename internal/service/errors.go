package service

import "errors"

var (
	// ErrInvalidCredentials is returned by login for an unknown identifier
	// and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when a mutation targets an unknown user.
	ErrUserNotFound = errors.New("user not found")

	ErrEmailAlreadyExists    = errors.New("email is already registered")
	ErrUsernameAlreadyExists = errors.New("username is already taken")

	// ErrLastAdmin is returned when a role change or deletion would leave
	// no admin behind.
	ErrLastAdmin = errors.New("cannot remove the last admin")

	// ErrSelfDeletion is returned when a user tries to delete their own
	// account.
	ErrSelfDeletion = errors.New("cannot delete your own account")

	// ErrForbidden is returned by [RequireAdmin] for non-admin users.
	ErrForbidden = errors.New("forbidden")

	// ErrSessionExpired is returned when renewing a session that has
	// already expired; the session is deleted as a side effect.
	ErrSessionExpired = errors.New("session expired")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
