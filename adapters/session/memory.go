package session

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore is an in-process IStore for development and tests. Data does
// not survive a restart; production deployments use the Redis store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]string)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return maps.Clone(data), nil
}

func (s *MemoryStore) Save(_ context.Context, id string, data map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = maps.Clone(data)
	return nil
}
