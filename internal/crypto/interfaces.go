// Package crypto holds the server-side primitives of the auth subsystem:
// password hashing with a memory-hard KDF and generation of opaque session
// tokens.
//
// Nothing in this package knows about storage, HTTP or users.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns passwords into stored hashes and checks candidates
// against them.
//
// Implementations must be safe for concurrent use and must not keep any
// mutable state between calls.
type PasswordHasher interface {
	// Hash derives a fresh salted hash for password. Two calls with the same
	// password return different strings.
	Hash(password string) (string, error)

	// Verify reports whether password matches stored. A malformed stored
	// value is reported as a mismatch, never as an error.
	Verify(password, stored string) bool
}

// TokenIssuer produces unguessable session tokens.
type TokenIssuer interface {
	IssueToken() (string, error)
}
