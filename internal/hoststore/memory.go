package hoststore

import (
	"context"
	"sync"
)

// memoryStore is an in-memory Store used for tests and dry runs.
type memoryStore struct {
	mu      sync.RWMutex
	objects map[string]*ObjectMeta
	states  map[string]stateEntry
}

type stateEntry struct {
	value any
	ack   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() Store {
	return &memoryStore{
		objects: make(map[string]*ObjectMeta),
		states:  make(map[string]stateEntry),
	}
}

func (m *memoryStore) GetObject(_ context.Context, path string) (*ObjectMeta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	meta, ok := m.objects[path]
	if !ok {
		return nil, nil
	}
	// Return a copy to prevent external modification.
	metaCopy := *meta
	return &metaCopy, nil
}

func (m *memoryStore) SetObject(_ context.Context, path string, meta *ObjectMeta, createOnly bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if createOnly {
		if _, exists := m.objects[path]; exists {
			return nil
		}
	}
	metaCopy := *meta
	m.objects[path] = &metaCopy
	return nil
}

func (m *memoryStore) GetState(_ context.Context, path string) (any, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.states[path]
	if !ok {
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *memoryStore) SetState(_ context.Context, path string, value any, ack bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[path] = stateEntry{value: value, ack: ack}
	return nil
}

func (m *memoryStore) GetForeignState(ctx context.Context, path string) (any, bool, error) {
	return m.GetState(ctx, path)
}
