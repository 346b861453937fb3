package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// sessionRepository is the SQL implementation of [SessionRepository].
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	query, args, err := r.db.builder.
		Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(session.ID, session.Token, session.UserID, session.ExpiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error inserting session")
		return r.db.classify(err)
	}

	return nil
}

func (r *sessionRepository) FindSessionByToken(ctx context.Context, token string) (models.Session, error) {
	query, args, err := r.db.builder.
		Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	session, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.FindSessionByToken").Msg("error finding session")
		return models.Session{}, r.db.classify(err)
	}

	return session, err
}

// ExtendSession never moves expires_at backwards and never touches a row
// that is already expired at now; both guards live in the UPDATE itself.
func (r *sessionRepository) ExtendSession(ctx context.Context, id string, expiresAt, now time.Time) (models.Session, error) {
	query, args, err := r.db.builder.
		Update(sessionsTable).
		Set("expires_at", sq.Expr(r.db.greatest()+"(expires_at, ?)", expiresAt)).
		Where(sq.Eq{"id": id}).
		Where(sq.Gt{"expires_at": now}).
		Suffix("RETURNING " + strings.Join(sessionColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	session, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.ExtendSession").Msg("error extending session")
		return models.Session{}, r.db.classify(err)
	}

	return session, err
}

func (r *sessionRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	return r.delete(ctx, sq.Eq{"token": token})
}

func (r *sessionRepository) DeleteSessionByID(ctx context.Context, id string) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *sessionRepository) delete(ctx context.Context, where sq.Eq) error {
	query, args, err := r.db.builder.Delete(sessionsTable).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.delete").Msg("error deleting session")
		return r.db.classify(err)
	}

	return nil
}
