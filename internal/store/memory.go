package store

import (
	"context"
	"sync"
)

// InMemoryKV is a KV implementation backed by a map. It is used as the
// test double throughout the core's tests and as a throwaway store when no
// durable backend is configured.
type InMemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// Ensure InMemoryKV implements the KV interface.
var _ KV = (*InMemoryKV)(nil)

// NewInMemoryKV creates an empty in-memory store.
func NewInMemoryKV() *InMemoryKV {
	return &InMemoryKV{values: make(map[string]string)}
}

// Get implements KV.Get.
func (s *InMemoryKV) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Set implements KV.Set.
func (s *InMemoryKV) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Remove implements KV.Remove.
func (s *InMemoryKV) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys. Test helper.
func (s *InMemoryKV) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
