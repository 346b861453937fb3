package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when no user matches the lookup key or
	// the mutation target.
	ErrUserNotFound = errors.New("user was not found")

	// ErrEmailAlreadyExists is returned when the email unique constraint
	// rejects an insert.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyExists is returned when the username unique
	// constraint rejects an insert.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrSessionNotFound is returned for unknown tokens and for renewals of
	// sessions that are gone or already expired.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrTokenAlreadyExists is returned when a freshly issued token collides
	// with a stored one.
	ErrTokenAlreadyExists = errors.New("session token already exists")

	// ErrUnknownDriver is returned by [NewStorages] for an unsupported
	// storage driver.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a query or statement fails for a
	// reason not mapped to a sentinel above.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
