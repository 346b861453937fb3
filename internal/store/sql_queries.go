package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

const (
	usersTable    = "users"
	sessionsTable = "sessions"
)

var (
	userColumns = []string{
		"id", "email", "username", "name", "password_hash", "role", "created_at", "updated_at",
	}
	sessionColumns = []string{"id", "token", "user_id", "expires_at"}
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return u, nil
}

func scanSession(row rowScanner) (models.Session, error) {
	var s models.Session
	err := row.Scan(&s.ID, &s.Token, &s.UserID, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return s, nil
}
