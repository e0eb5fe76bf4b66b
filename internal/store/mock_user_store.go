package store

import (
	"context"
	"sync"
	"time"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
)

// MockUserStore is an in-memory UserStore used by tests.
type MockUserStore struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (m *MockUserStore) emailTaken(email string, excludeID int64) bool {
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true
		}
	}
	return false
}

func (m *MockUserStore) usernameTaken(username string, excludeID int64) bool {
	for _, u := range m.users {
		if u.Username != nil && *u.Username == username && u.ID != excludeID {
			return true
		}
	}
	return false
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(user.Email, 0) {
		return ErrUserAlreadyExists
	}
	if user.Username != nil && m.usernameTaken(*user.Username, 0) {
		return ErrUserAlreadyExists
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	userCopy := *user
	m.users[user.ID] = &userCopy
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			userCopy := *user
			return &userCopy, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserStore) UpdateProfile(ctx context.Context, id int64, update *domain.UserUpdate) (*domain.User, error) {
	if update.Fullname == nil && update.Username == nil && update.Email == nil && update.PasswordHash == nil {
		return nil, ErrNoFieldsToUpdate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	if update.Email != nil && m.emailTaken(*update.Email, id) {
		return nil, ErrUserAlreadyExists
	}
	if update.Username != nil && m.usernameTaken(*update.Username, id) {
		return nil, ErrUserAlreadyExists
	}
	if update.Fullname != nil {
		user.Fullname = *update.Fullname
	}
	if update.Username != nil {
		user.Username = update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	user.UpdatedAt = time.Now().UTC()
	userCopy := *user
	return &userCopy, nil
}
