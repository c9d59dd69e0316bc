// Package storage provides the key/value store that backs settings and
// leaderboard persistence. Values are opaque strings; callers own the
// encoding.
package storage

import "sync"

// Store is the persistence contract used by the game for small blobs of
// state that must survive restarts. Get reports whether the key exists.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemStore is an in-memory Store. It is the default when no data
// directory is configured and the workhorse for tests.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
