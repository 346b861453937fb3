package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

// memoryStore keeps users and sessions in process memory. It backs the
// "memory" driver and tests; every method holds the mutex for its whole
// duration, which gives the per-row atomicity the SQL backends get from
// single statements.
type memoryStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	sessions map[string]models.Session // by id
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[string]models.User),
		sessions: make(map[string]models.Session),
	}
}

// NewMemoryStorages returns [Storages] backed by a fresh in-memory store.
func NewMemoryStorages() *Storages {
	m := newMemoryStore()
	return &Storages{
		UserRepository:    &memoryUserRepository{m},
		SessionRepository: &memorySessionRepository{m},
		ping:              func(context.Context) error { return nil },
		close:             func() error { return nil },
	}
}

type memoryUserRepository struct{ *memoryStore }

func (m *memoryUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return models.User{}, ErrEmailAlreadyExists
		}
		if u.Username == user.Username {
			return models.User{}, ErrUsernameAlreadyExists
		}
	}

	m.users[user.ID] = user
	return user, nil
}

func (m *memoryUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return u.ID == id })
}

func (m *memoryUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *memoryUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Username == username })
}

func (m *memoryUserRepository) findUser(match func(models.User) bool) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (m *memoryUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}

	slices.SortFunc(users, func(a, b models.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return users, nil
}

func (m *memoryUserRepository) CountUsers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.users), nil
}

func (m *memoryUserRepository) CountUsersByRole(ctx context.Context, role models.Role) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *memoryUserRepository) UpdateUserRole(ctx context.Context, id string, role models.Role, updatedAt time.Time) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	u.Role = role
	u.UpdatedAt = updatedAt
	m.users[id] = u
	return u, nil
}

func (m *memoryUserRepository) UpdateUserPassword(ctx context.Context, id string, passwordHash string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = updatedAt
	m.users[id] = u
	return nil
}

func (m *memoryUserRepository) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrUserNotFound
	}

	delete(m.users, id)
	for sid, s := range m.sessions {
		if s.UserID == id {
			delete(m.sessions, sid)
		}
	}
	return nil
}

type memorySessionRepository struct{ *memoryStore }

func (m *memorySessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[session.UserID]; !ok {
		return ErrUserNotFound
	}
	for _, s := range m.sessions {
		if s.Token == session.Token {
			return ErrTokenAlreadyExists
		}
	}

	m.sessions[session.ID] = session
	return nil
}

func (m *memorySessionRepository) FindSessionByToken(ctx context.Context, token string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		if s.Token == token {
			return s, nil
		}
	}
	return models.Session{}, ErrSessionNotFound
}

func (m *memorySessionRepository) ExtendSession(ctx context.Context, id string, expiresAt, now time.Time) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || !s.ExpiresAt.After(now) {
		return models.Session{}, ErrSessionNotFound
	}

	if expiresAt.After(s.ExpiresAt) {
		s.ExpiresAt = expiresAt
		m.sessions[id] = s
	}
	return s, nil
}

func (m *memorySessionRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if s.Token == token {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *memorySessionRepository) DeleteSessionByID(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}
