package blob

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store used by tests and local dry runs.
type MemStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		objects: make(map[string][]byte),
	}
}

// Exists reports whether an object is present at key.
func (m *MemStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.objects[key]
	return ok, nil
}

// Read returns a copy of the object at key.
func (m *MemStore) Read(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores a copy of data at key, honoring the overwrite flag.
func (m *MemStore) Write(ctx context.Context, key string, data []byte, overwrite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; ok && !overwrite {
		return ErrAlreadyExists
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[key] = stored
	return nil
}
