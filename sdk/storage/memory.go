package storage

import (
	"context"
	"sync"
)

type memoryStore struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryStore returns a Store that keeps values in memory only. Everything
// in it is gone when the process exits.
func NewMemoryStore() Store {
	return &memoryStore{
		values: map[string]string{},
	}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryStore) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}
