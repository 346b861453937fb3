package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names declared in migrations/postgres.
const (
	constraintUsersEmail    = "users_email_key"
	constraintUsersUsername = "users_username_key"
	constraintSessionsToken = "sessions_token_key"
	constraintSessionsUser  = "sessions_user_id_fkey"
)

// PostgresErrorClassifier implements [ErrorClassificator] for the pgx driver
// by inspecting the SQLSTATE code and constraint name of *pgconn.PgError.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case constraintUsersEmail:
			return ErrEmailAlreadyExists
		case constraintUsersUsername:
			return ErrUsernameAlreadyExists
		case constraintSessionsToken:
			return ErrTokenAlreadyExists
		}
	case pgerrcode.ForeignKeyViolation:
		if pgErr.ConstraintName == constraintSessionsUser {
			return ErrUserNotFound
		}
	}

	return nil
}
