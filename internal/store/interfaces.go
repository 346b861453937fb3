package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts. Lookups by email and username
// expect already-normalized (trimmed, lowercased) input.
type UserRepository interface {
	// CreateUser inserts user as given. Duplicate email or username yield
	// [ErrEmailAlreadyExists] or [ErrUsernameAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// ListUsers returns every account ordered by creation time.
	ListUsers(ctx context.Context) ([]models.User, error)

	CountUsers(ctx context.Context) (int, error)
	CountUsersByRole(ctx context.Context, role models.Role) (int, error)

	// UpdateUserRole sets the role and returns the updated record, or
	// [ErrUserNotFound].
	UpdateUserRole(ctx context.Context, id string, role models.Role, updatedAt time.Time) (models.User, error)

	UpdateUserPassword(ctx context.Context, id string, passwordHash string, updatedAt time.Time) error

	// DeleteUser removes the account together with its sessions.
	DeleteUser(ctx context.Context, id string) error
}

// SessionRepository persists sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error

	// FindSessionByToken returns [ErrSessionNotFound] for unknown tokens.
	// Expired sessions are returned as is; expiry is decided by the caller.
	FindSessionByToken(ctx context.Context, token string) (models.Session, error)

	// ExtendSession sets expires_at to max(expires_at, expiresAt) for a
	// session still live at now, in a single statement. A session that is
	// missing or already expired at now yields [ErrSessionNotFound].
	ExtendSession(ctx context.Context, id string, expiresAt, now time.Time) (models.Session, error)

	// DeleteSessionByToken and DeleteSessionByID are idempotent.
	DeleteSessionByToken(ctx context.Context, token string) error
	DeleteSessionByID(ctx context.Context, id string) error
}

// ErrorClassificator maps driver errors to store sentinels. Classify
// returns nil when err is not recognized.
type ErrorClassificator interface {
	Classify(err error) error
}
