package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-account-console/internal/types"
)

var _ UserRepo = (*MemoryUserRepo)(nil)

// MemoryUserRepo keeps accounts in a map. It backs tests and the e2e suite
// and follows the same semantics as PostgresUserRepo.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]types.User
	now   func() time.Time
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{
		users: make(map[uuid.UUID]types.User),
		now:   time.Now,
	}
}

// WithClock replaces the time source used for registration and login stamps.
func (m *MemoryUserRepo) WithClock(now func() time.Time) *MemoryUserRepo {
	m.now = now
	return m
}

func (m *MemoryUserRepo) CreateUser(_ context.Context, params types.CreateUserParams) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == params.Email {
			return nil, types.ErrConflict
		}
	}
	u := types.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Status:       types.StatusActive,
		RegisteredAt: m.now().UTC(),
	}
	m.users[u.ID] = u
	return &u, nil
}

func (m *MemoryUserRepo) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *MemoryUserRepo) GetUserByID(_ context.Context, userID uuid.UUID) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &u, nil
}

func (m *MemoryUserRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return time.Time{}, types.ErrNotFound
	}
	now := m.now().UTC()
	if u.LastLoginAt != nil && u.LastLoginAt.After(now) {
		now = *u.LastLoginAt
	}
	u.LastLoginAt = &now
	m.users[userID] = u
	return now, nil
}

func (m *MemoryUserRepo) UpdateStatus(_ context.Context, userIDs []uuid.UUID, status types.UserStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var affected int64
	for _, id := range userIDs {
		u, ok := m.users[id]
		if !ok || u.Status == status {
			continue
		}
		u.Status = status
		m.users[id] = u
		affected++
	}
	return affected, nil
}

func (m *MemoryUserRepo) DeleteUsers(_ context.Context, userIDs []uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var affected int64
	for _, id := range userIDs {
		if _, ok := m.users[id]; ok {
			delete(m.users, id)
			affected++
		}
	}
	return affected, nil
}

func (m *MemoryUserRepo) ListUsers(_ context.Context) ([]types.User, error) {
	m.mu.RLock()
	users := make([]types.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	m.mu.RUnlock()

	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		switch {
		case a.LastLoginAt == nil && b.LastLoginAt != nil:
			return false
		case a.LastLoginAt != nil && b.LastLoginAt == nil:
			return true
		case a.LastLoginAt != nil && !a.LastLoginAt.Equal(*b.LastLoginAt):
			return a.LastLoginAt.After(*b.LastLoginAt)
		}
		return a.RegisteredAt.After(b.RegisteredAt)
	})
	return users, nil
}
