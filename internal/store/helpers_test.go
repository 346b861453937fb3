package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/migrations"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

var (
	userRowColumns    = []string{"id", "email", "username", "name", "password_hash", "role", "created_at", "updated_at"}
	sessionRowColumns = []string{"id", "token", "user_id", "expires_at"}
	fixedNow          = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newTestDB(t *testing.T, dialect string) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	var classificator ErrorClassificator = NewSQLiteErrorClassifier()
	if dialect == migrations.DialectPostgres {
		classificator = NewPostgresErrorClassifier()
	}

	return newDB(conn, dialect, classificator, logger.Nop()), mock
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, migrations.DialectPostgres)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func newTestSessionRepo(t *testing.T, dialect string) (*sessionRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, dialect)
	return &sessionRepository{db: db, logger: logger.Nop()}, mock
}

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func testUser() models.User {
	return models.User{
		ID:           "0195a0c4-0000-7000-8000-000000000001",
		Email:        "driver@example.com",
		Username:     "driver",
		Name:         "Driver",
		PasswordHash: "aa:bb",
		Role:         models.RoleUser,
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}
}

func userRow(u models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).
		AddRow(u.ID, u.Email, u.Username, u.Name, u.PasswordHash, string(u.Role), u.CreatedAt, u.UpdatedAt)
}

func assertExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}
