package models

import "time"

// Session proves possession of a login. Whoever presents Token is treated as
// UserID until ExpiresAt.
type Session struct {
	ID string `json:"id"`

	// Token is the bearer secret carried by the session cookie.
	Token string `json:"-"`

	UserID string `json:"user_id"`

	// ExpiresAt is pushed forward on every authenticated request.
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
// A session that expires exactly at now is considered expired.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
