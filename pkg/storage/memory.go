package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps every value in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.m[key] = clone(value)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) PutMany(_ context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range entries {
		s.m[k] = clone(v)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.m, k)
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
