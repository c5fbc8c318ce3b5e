package memory

import (
	"context"
	"sync"

	"github.com/makebuild-code/slidenav/pkg/domain"
)

// Store implements ports.PositionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Position
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Position),
	}
}

// Save persists the position in memory.
func (s *Store) Save(ctx context.Context, sessionID string, pos *domain.Position) error {
	copied := pos.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves the position from memory. Returned values are detached
// copies so callers cannot mutate store state through the pointer.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return pos.Clone(), nil
}

// Delete removes the position.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
