package storage

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process WatchKV. It backs the server when no database is
// configured and stands in for durable storage in tests.
type Memory struct {
	mu       sync.Mutex
	entries  map[string][]byte
	watchers map[string][]chan []byte
}

func NewMemory() *Memory {
	return &Memory{
		entries:  make(map[string][]byte),
		watchers: make(map[string][]chan []byte),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = slices.Clone(value)
	for _, ch := range m.watchers[key] {
		Offer(ch, slices.Clone(value))
	}
	return nil
}

func (m *Memory) Watch(ctx context.Context, key string) (<-chan []byte, error) {
	ch := make(chan []byte, 1)

	m.mu.Lock()
	m.watchers[key] = append(m.watchers[key], ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		m.watchers[key] = slices.DeleteFunc(m.watchers[key], func(c chan []byte) bool { return c == ch })
		if len(m.watchers[key]) == 0 {
			delete(m.watchers, key)
		}
		close(ch)
	}()

	return ch, nil
}
