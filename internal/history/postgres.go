package history

import (
	"context"
	"strings"
)

// Backend is implemented by *store.PostgresStore
type Backend interface {
	AddQuery(ctx context.Context, query string) error
	ListQueries(ctx context.Context, limit int) ([]string, error)
	PruneQueries(ctx context.Context, limit int) error
	ClearQueries(ctx context.Context) error
}

// DBStore persists history through a Backend so it survives restarts
type DBStore struct {
	backend Backend
	limit   LimitFunc
}

func NewDBStore(backend Backend, limit LimitFunc) *DBStore {
	return &DBStore{backend: backend, limit: limit}
}

func (s *DBStore) Add(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if err := s.backend.AddQuery(ctx, query); err != nil {
		return err
	}
	return s.backend.PruneQueries(ctx, s.limit.get())
}

func (s *DBStore) List(ctx context.Context) ([]string, error) {
	return s.backend.ListQueries(ctx, s.limit.get())
}

func (s *DBStore) Clear(ctx context.Context) error {
	return s.backend.ClearQueries(ctx)
}

// Prune drops entries beyond the current limit
func (s *DBStore) Prune(ctx context.Context) error {
	return s.backend.PruneQueries(ctx, s.limit.get())
}
