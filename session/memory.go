package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and single-node
// development. Not suitable for horizontally scaled deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	byUser   map[string]map[string]struct{}
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		byUser:   make(map[string]map[string]struct{}),
	}
}

func (m *MemoryStore) Insert(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; exists {
		return ErrDuplicateID
	}
	m.sessions[s.ID] = *s
	if m.byUser[s.UserID] == nil {
		m.byUser[s.UserID] = make(map[string]struct{})
	}
	m.byUser[s.UserID][s.ID] = struct{}{}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil
	}
	s.ExpiresAt = expiresAt
	m.sessions[token] = s
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil
	}
	delete(m.sessions, token)
	if set := m.byUser[s.UserID]; set != nil {
		delete(set, token)
		if len(set) == 0 {
			delete(m.byUser, s.UserID)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteByUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for token := range m.byUser[userID] {
		delete(m.sessions, token)
	}
	delete(m.byUser, userID)
	return nil
}

// Len reports the number of live entries; test helper.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*RedisStore)(nil)
