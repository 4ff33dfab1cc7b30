package credentials

import (
	"context"
	"sync"
)

// Verify interface compliance
var _ Store = (*MemoryStore)(nil)

type memoryUser struct {
	passwordHash string
	groups       []string
}

// MemoryStore implements Store using an in-memory map
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]memoryUser
}

// NewMemoryStore creates a new MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]memoryUser),
	}
}

// FindPasswordHash implements Store
func (s *MemoryStore) FindPasswordHash(_ context.Context, username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return "", ErrUserNotFound
	}
	return user.passwordHash, nil
}

// FindGroups implements Store
func (s *MemoryStore) FindGroups(_ context.Context, username string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string{}, s.users[username].groups...), nil
}

// AddUser adds or replaces a user
func (s *MemoryStore) AddUser(username, passwordHash string, groups ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = memoryUser{
		passwordHash: passwordHash,
		groups:       append([]string{}, groups...),
	}
}

// RemoveUser removes a user from memory
func (s *MemoryStore) RemoveUser(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, username)
}
