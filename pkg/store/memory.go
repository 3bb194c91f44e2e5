package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory layout store for development and testing.
type Memory struct {
	mu      sync.RWMutex
	layouts map[string]Layout
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{layouts: make(map[string]Layout)}
}

func (m *Memory) Put(ctx context.Context, l *Layout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layouts[l.ID] = *l
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*Layout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.layouts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (m *Memory) List(ctx context.Context, limit int) ([]*Layout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Layout, 0, len(m.layouts))
	for id := range m.layouts {
		l := m.layouts[id]
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.layouts[id]; !ok {
		return ErrNotFound
	}
	delete(m.layouts, id)
	return nil
}

func (m *Memory) Close(ctx context.Context) error { return nil }

// Ensure Memory implements LayoutStore.
var _ LayoutStore = (*Memory)(nil)
