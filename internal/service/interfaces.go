package service

import (
	"context"
	"net/url"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

// SessionService creates, looks up, renews and deletes sessions.
type SessionService interface {
	// Create issues a fresh token for userID, valid for [SessionService.Duration].
	Create(ctx context.Context, userID string) (models.Session, error)

	// FindByToken reports found == false for unknown tokens. Expired
	// sessions are still returned; the caller checks expiry.
	FindByToken(ctx context.Context, token string) (session models.Session, found bool, err error)

	// Renew pushes expiry to now + Duration. It never moves expiry
	// backwards and refuses sessions already expired ([ErrSessionExpired]).
	Renew(ctx context.Context, session models.Session) (models.Session, error)

	DeleteByToken(ctx context.Context, token string) error
	DeleteByID(ctx context.Context, id string) error

	// Duration is the sliding session window.
	Duration() time.Duration
}

// UserDirectory owns user accounts and is the only component that sees
// password hashes. Everything it returns is a [models.PublicUser].
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (models.PublicUser, bool, error)
	FindByUsername(ctx context.Context, username string) (models.PublicUser, bool, error)
	FindByID(ctx context.Context, id string) (models.PublicUser, bool, error)

	Create(ctx context.Context, user models.NewUser) (models.PublicUser, error)

	// VerifyLogin checks a password for an email or a username. Unknown
	// identifiers and wrong passwords are indistinguishable: both yield
	// ok == false after the same amount of KDF work.
	VerifyLogin(ctx context.Context, identifier, password string) (user models.PublicUser, ok bool, err error)

	UpdateRole(ctx context.Context, id string, role models.Role) (models.PublicUser, error)

	// UpdatePassword replaces the hash. Existing sessions stay valid.
	UpdatePassword(ctx context.Context, id, password string) error

	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.PublicUser, error)
}

// AuthGateway turns a raw Cookie header into an authenticated request
// context and runs the login, registration and logout flows.
type AuthGateway interface {
	// RequireUser authenticates a request. Missing, unknown, expired or
	// orphaned sessions produce [Unauthenticated]; only storage failures are
	// returned as errors.
	RequireUser(ctx context.Context, cookieHeader string, requested *url.URL) (AuthResult, error)

	Login(ctx context.Context, identifier, password string) (models.PublicUser, *Headers, error)
	Register(ctx context.Context, user models.NewUser) (models.PublicUser, *Headers, error)
	Logout(ctx context.Context, cookieHeader string) (*Headers, error)

	// DeleteUser deletes the account id on behalf of actor.
	DeleteUser(ctx context.Context, actor models.PublicUser, id string) error
}

// OwnedRecordsHook detaches or reassigns records owned by a user about to
// be deleted. It runs before the user row is removed; an error aborts the
// deletion.
type OwnedRecordsHook interface {
	DetachUser(ctx context.Context, userID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IDGenerator issues unique identifiers for users and sessions.
type IDGenerator interface {
	Generate() string
}
