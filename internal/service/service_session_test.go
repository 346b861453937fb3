package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/mock"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
	"github.com/MKhiriev/go-fleet-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSessionDuration = 14 * 24 * time.Hour

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

type fixedIDs string

func (f fixedIDs) Generate() string { return string(f) }

func newMockedSessionService(t *testing.T) (*sessionService, *mock.MockSessionRepository, *mock.MockTokenIssuer) {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := mock.NewMockSessionRepository(ctrl)
	issuer := mock.NewMockTokenIssuer(ctrl)

	s := NewSessionService(repo, issuer, fixedIDs("session-1"), testSessionDuration, logger.Nop()).(*sessionService)
	s.now = func() time.Time { return testNow }
	return s, repo, issuer
}

func TestSessionService_Duration(t *testing.T) {
	s, _, _ := newMockedSessionService(t)
	assert.Equal(t, testSessionDuration, s.Duration())
}

func TestSessionService_Create(t *testing.T) {
	s, repo, issuer := newMockedSessionService(t)
	ctx := context.Background()

	want := models.Session{
		ID:        "session-1",
		Token:     "opaque-token",
		UserID:    "user-1",
		ExpiresAt: testNow.Add(testSessionDuration),
	}

	issuer.EXPECT().IssueToken().Return("opaque-token", nil)
	repo.EXPECT().CreateSession(ctx, want).Return(nil)

	got, err := s.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSessionService_Create_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("token issuer fails", func(t *testing.T) {
		s, _, issuer := newMockedSessionService(t)
		issuer.EXPECT().IssueToken().Return("", errors.New("entropy exhausted"))

		_, err := s.Create(ctx, "user-1")
		require.Error(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		s, repo, issuer := newMockedSessionService(t)
		issuer.EXPECT().IssueToken().Return("tok", nil)
		repo.EXPECT().CreateSession(ctx, gomock.Any()).Return(store.ErrUserNotFound)

		_, err := s.Create(ctx, "ghost")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		s, repo, issuer := newMockedSessionService(t)
		issuer.EXPECT().IssueToken().Return("tok", nil)
		repo.EXPECT().CreateSession(ctx, gomock.Any()).Return(store.ErrExecutingQuery)

		_, err := s.Create(ctx, "user-1")
		require.ErrorIs(t, err, store.ErrExecutingQuery)
	})
}

func TestSessionService_FindByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("empty token skips storage", func(t *testing.T) {
		s, _, _ := newMockedSessionService(t)

		_, found, err := s.FindByToken(ctx, "")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("found", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		session := models.Session{ID: "s", Token: "tok", UserID: "u", ExpiresAt: testNow.Add(time.Hour)}
		repo.EXPECT().FindSessionByToken(ctx, "tok").Return(session, nil)

		got, found, err := s.FindByToken(ctx, "tok")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, session, got)
	})

	t.Run("not found is absence", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		repo.EXPECT().FindSessionByToken(ctx, "tok").Return(models.Session{}, store.ErrSessionNotFound)

		_, found, err := s.FindByToken(ctx, "tok")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("storage failure", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		repo.EXPECT().FindSessionByToken(ctx, "tok").Return(models.Session{}, store.ErrExecutingQuery)

		_, _, err := s.FindByToken(ctx, "tok")
		require.ErrorIs(t, err, store.ErrExecutingQuery)
	})
}

func TestSessionService_Renew(t *testing.T) {
	ctx := context.Background()
	session := models.Session{ID: "s", Token: "tok", UserID: "u", ExpiresAt: testNow.Add(time.Hour)}

	t.Run("extends to now plus window", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		renewed := session
		renewed.ExpiresAt = testNow.Add(testSessionDuration)
		repo.EXPECT().ExtendSession(ctx, "s", testNow.Add(testSessionDuration), testNow).Return(renewed, nil)

		got, err := s.Renew(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, renewed, got)
		assert.True(t, got.ExpiresAt.After(session.ExpiresAt))
	})

	t.Run("expired session is deleted, not renewed", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		expired := session
		expired.ExpiresAt = testNow.Add(-time.Second)
		repo.EXPECT().DeleteSessionByID(ctx, "s").Return(nil)

		_, err := s.Renew(ctx, expired)
		require.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("expiring exactly now counts as expired", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		edge := session
		edge.ExpiresAt = testNow
		repo.EXPECT().DeleteSessionByID(ctx, "s").Return(nil)

		_, err := s.Renew(ctx, edge)
		require.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("expired concurrently", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		gomock.InOrder(
			repo.EXPECT().ExtendSession(ctx, "s", gomock.Any(), testNow).Return(models.Session{}, store.ErrSessionNotFound),
			repo.EXPECT().DeleteSessionByID(ctx, "s").Return(nil),
		)

		_, err := s.Renew(ctx, session)
		require.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("storage failure", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		repo.EXPECT().ExtendSession(ctx, "s", gomock.Any(), testNow).Return(models.Session{}, store.ErrExecutingQuery)

		_, err := s.Renew(ctx, session)
		require.ErrorIs(t, err, store.ErrExecutingQuery)
		assert.NotErrorIs(t, err, ErrSessionExpired)
	})
}

func TestSessionService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("by token", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		repo.EXPECT().DeleteSessionByToken(ctx, "tok").Return(nil)
		require.NoError(t, s.DeleteByToken(ctx, "tok"))
	})

	t.Run("empty token is a no-op", func(t *testing.T) {
		s, _, _ := newMockedSessionService(t)
		require.NoError(t, s.DeleteByToken(ctx, ""))
	})

	t.Run("by id", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		repo.EXPECT().DeleteSessionByID(ctx, "s").Return(nil)
		require.NoError(t, s.DeleteByID(ctx, "s"))
	})

	t.Run("failure is surfaced", func(t *testing.T) {
		s, repo, _ := newMockedSessionService(t)
		repo.EXPECT().DeleteSessionByID(ctx, "s").Return(store.ErrExecutingQuery)
		require.ErrorIs(t, s.DeleteByID(ctx, "s"), store.ErrExecutingQuery)
	})
}
