package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

func seededMemory(t *testing.T) (*Storages, models.User) {
	t.Helper()
	s := NewMemoryStorages()
	user, err := s.UserRepository.CreateUser(context.Background(), testUser())
	require.NoError(t, err)
	return s, user
}

func TestMemoryUsers_UniqueKeys(t *testing.T) {
	s, user := seededMemory(t)
	ctx := context.Background()

	dupEmail := testUser()
	dupEmail.ID, dupEmail.Username = "other", "other"
	_, err := s.UserRepository.CreateUser(ctx, dupEmail)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	dupUsername := testUser()
	dupUsername.ID, dupUsername.Email = "other", "other@example.com"
	_, err = s.UserRepository.CreateUser(ctx, dupUsername)
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	n, err := s.UserRepository.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	found, err := s.UserRepository.FindUserByUsername(ctx, user.Username)
	require.NoError(t, err)
	assert.Equal(t, user, found)
}

func TestMemoryUsers_ListOrderAndCounts(t *testing.T) {
	s := NewMemoryStorages()
	ctx := context.Background()

	for i, name := range []string{"carol", "alice", "bob"} {
		u := models.User{
			ID:        name,
			Email:     name + "@example.com",
			Username:  name,
			Role:      models.RoleUser,
			CreatedAt: fixedNow.Add(time.Duration(i) * time.Minute),
		}
		if name == "alice" {
			u.Role = models.RoleAdmin
		}
		_, err := s.UserRepository.CreateUser(ctx, u)
		require.NoError(t, err)
	}

	users, err := s.UserRepository.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"carol", "alice", "bob"}, []string{users[0].ID, users[1].ID, users[2].ID})

	admins, err := s.UserRepository.CountUsersByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, admins)
}

func TestMemoryUsers_Updates(t *testing.T) {
	s, user := seededMemory(t)
	ctx := context.Background()
	later := fixedNow.Add(time.Hour)

	updated, err := s.UserRepository.UpdateUserRole(ctx, user.ID, models.RoleAdmin, later)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Equal(t, later, updated.UpdatedAt)

	require.NoError(t, s.UserRepository.UpdateUserPassword(ctx, user.ID, "new:hash", later))
	found, err := s.UserRepository.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new:hash", found.PasswordHash)

	_, err = s.UserRepository.UpdateUserRole(ctx, "missing", models.RoleAdmin, later)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, s.UserRepository.UpdateUserPassword(ctx, "missing", "x", later), ErrUserNotFound)
}

func TestMemoryUsers_DeleteCascadesSessions(t *testing.T) {
	s, user := seededMemory(t)
	ctx := context.Background()

	sess := models.Session{ID: "s1", Token: "t1", UserID: user.ID, ExpiresAt: fixedNow.Add(time.Hour)}
	require.NoError(t, s.SessionRepository.CreateSession(ctx, sess))

	require.NoError(t, s.UserRepository.DeleteUser(ctx, user.ID))

	_, err := s.SessionRepository.FindSessionByToken(ctx, "t1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, s.UserRepository.DeleteUser(ctx, user.ID), ErrUserNotFound)
}

func TestMemorySessions_CreateRequiresUserAndUniqueToken(t *testing.T) {
	s, user := seededMemory(t)
	ctx := context.Background()

	err := s.SessionRepository.CreateSession(ctx, models.Session{ID: "s1", Token: "t1", UserID: "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, s.SessionRepository.CreateSession(ctx, models.Session{ID: "s1", Token: "t1", UserID: user.ID}))
	err = s.SessionRepository.CreateSession(ctx, models.Session{ID: "s2", Token: "t1", UserID: user.ID})
	assert.ErrorIs(t, err, ErrTokenAlreadyExists)
}

func TestMemorySessions_Extend(t *testing.T) {
	s, user := seededMemory(t)
	ctx := context.Background()
	sess := models.Session{ID: "s1", Token: "t1", UserID: user.ID, ExpiresAt: fixedNow.Add(time.Hour)}
	require.NoError(t, s.SessionRepository.CreateSession(ctx, sess))

	t.Run("moves forward", func(t *testing.T) {
		got, err := s.SessionRepository.ExtendSession(ctx, "s1", fixedNow.Add(2*time.Hour), fixedNow)
		require.NoError(t, err)
		assert.Equal(t, fixedNow.Add(2*time.Hour), got.ExpiresAt)
	})

	t.Run("never moves backwards", func(t *testing.T) {
		got, err := s.SessionRepository.ExtendSession(ctx, "s1", fixedNow.Add(30*time.Minute), fixedNow)
		require.NoError(t, err)
		assert.Equal(t, fixedNow.Add(2*time.Hour), got.ExpiresAt)
	})

	t.Run("refuses expired", func(t *testing.T) {
		_, err := s.SessionRepository.ExtendSession(ctx, "s1", fixedNow.Add(5*time.Hour), fixedNow.Add(3*time.Hour))
		assert.ErrorIs(t, err, ErrSessionNotFound)

		stored, err := s.SessionRepository.FindSessionByToken(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, fixedNow.Add(2*time.Hour), stored.ExpiresAt)
	})

	t.Run("refuses missing", func(t *testing.T) {
		_, err := s.SessionRepository.ExtendSession(ctx, "nope", fixedNow.Add(time.Hour), fixedNow)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestMemorySessions_ConcurrentExtendIsMonotonic(t *testing.T) {
	s, user := seededMemory(t)
	ctx := context.Background()
	require.NoError(t, s.SessionRepository.CreateSession(ctx, models.Session{
		ID: "s1", Token: "t1", UserID: user.ID, ExpiresAt: fixedNow.Add(time.Minute),
	}))

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.SessionRepository.ExtendSession(ctx, "s1", fixedNow.Add(time.Duration(i)*time.Hour), fixedNow)
		}(i)
	}
	wg.Wait()

	got, err := s.SessionRepository.FindSessionByToken(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(50*time.Hour), got.ExpiresAt)
}

func TestMemorySessions_DeleteIsIdempotent(t *testing.T) {
	s, user := seededMemory(t)
	ctx := context.Background()
	require.NoError(t, s.SessionRepository.CreateSession(ctx, models.Session{ID: "s1", Token: "t1", UserID: user.ID}))

	require.NoError(t, s.SessionRepository.DeleteSessionByToken(ctx, "t1"))
	require.NoError(t, s.SessionRepository.DeleteSessionByToken(ctx, "t1"))
	require.NoError(t, s.SessionRepository.DeleteSessionByID(ctx, "s1"))
}

func TestMemoryStorages_PingClose(t *testing.T) {
	s := NewMemoryStorages()
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
}
