package history

import (
	"context"
	"strings"
	"sync"
)

// DefaultLimit is the number of queries kept when no limit is configured
const DefaultLimit = 10

// Store keeps previously submitted queries, most recent first.
// Submitting a query again moves it to the front.
type Store interface {
	Add(ctx context.Context, query string) error
	List(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

// LimitFunc reports the current cap; values below 1 fall back to DefaultLimit
type LimitFunc func() int

func (f LimitFunc) get() int {
	if f == nil {
		return DefaultLimit
	}
	if n := f(); n > 0 {
		return n
	}
	return DefaultLimit
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu      sync.Mutex
	entries []string
	limit   LimitFunc
}

func NewMemoryStore(limit LimitFunc) *MemoryStore {
	return &MemoryStore{limit: limit}
}

func (m *MemoryStore) Add(_ context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]string, 0, len(m.entries)+1)
	entries = append(entries, query)
	for _, e := range m.entries {
		if e != query {
			entries = append(entries, e)
		}
	}
	if limit := m.limit.get(); len(entries) > limit {
		entries = entries[:limit]
	}
	m.entries = entries
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.entries)
	if limit := m.limit.get(); n > limit {
		n = limit
	}
	out := make([]string, n)
	copy(out, m.entries[:n])
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// Prune drops entries beyond the current limit
func (m *MemoryStore) Prune(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit := m.limit.get(); len(m.entries) > limit {
		m.entries = m.entries[:limit]
	}
	return nil
}
