package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/migrations"
)

// DB is a database/sql handle together with the SQL dialect it speaks.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect string, classificator ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == migrations.DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classificator,
		logger:             log,
	}
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// greatest renders the two-argument maximum function of the dialect.
func (db *DB) greatest() string {
	if db.dialect == migrations.DialectPostgres {
		return "GREATEST"
	}
	return "MAX"
}

// classify maps err to a store sentinel, falling back to wrapping it with
// [ErrExecutingQuery].
func (db *DB) classify(err error) error {
	if db.errorClassificator != nil {
		if mapped := db.errorClassificator.Classify(err); mapped != nil {
			return mapped
		}
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
