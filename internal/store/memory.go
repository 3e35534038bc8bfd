package store

import (
	"context"
	"sync"
	"time"

	"github.com/fyrsmithlabs/verdant/internal/domain"
)

// Memory is an in-process Store. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]domain.Entry
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]domain.Entry),
		now:     time.Now,
	}
}

func (m *Memory) List(_ context.Context) ([]domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sorted := domain.SortedByCreatedAtAsc(out)
	// Newest first.
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted, nil
}

func (m *Memory) Get(_ context.Context, id string) (domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[id]
	if !ok {
		return domain.Entry{}, ErrNotFound
	}
	return e, nil
}

func (m *Memory) Create(_ context.Context, title, text string) (domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := newEntry(title, text, m.now())
	m.entries[e.ID] = e
	return e, nil
}

func (m *Memory) Update(_ context.Context, id, title, text string) (domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return domain.Entry{}, ErrNotFound
	}
	applyUpdate(&e, title, text)
	m.entries[id] = e
	return e, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *Memory) Close() error { return nil }
