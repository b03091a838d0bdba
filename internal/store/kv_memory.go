package store

import (
	"context"
	"fmt"
	"sync"
)

var _ Batcher = (*memoryStore)(nil)

type memoryStore struct {
	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

// NewMemoryStore returns a process-local [KeyValueStore]. Its content is
// lost on exit; it backs tests and the "memory" DSN.
func NewMemoryStore() KeyValueStore {
	return &memoryStore{items: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, fmt.Errorf("%w: %w", ErrStorage, ErrStoreClosed)
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memoryStore) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("%w: %w", ErrStorage, ErrStoreClosed)
	}
	m.items[key] = value
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("%w: %w", ErrStorage, ErrStoreClosed)
	}
	delete(m.items, key)
	return nil
}

func (m *memoryStore) Apply(_ context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("%w: %w", ErrStorage, ErrStoreClosed)
	}
	for _, e := range entries {
		if e.Delete {
			delete(m.items, e.Key)
			continue
		}
		m.items[e.Key] = e.Value
	}
	return nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = nil
	return nil
}
