package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("not found")

// DB is the subset of *pgxpool.Pool used by the store
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewWithDB wraps an existing connection
func NewWithDB(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS search_history (
    id          BIGSERIAL PRIMARY KEY,
    query       TEXT NOT NULL UNIQUE,
    searched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS app_settings (
    key         TEXT PRIMARY KEY,
    value       JSONB NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// EnsureSchema creates the tables if they are missing
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// AddQuery records a search query as the most recent one
func (s *PostgresStore) AddQuery(ctx context.Context, query string) error {
	const q = `
		INSERT INTO search_history (query) VALUES ($1)
		ON CONFLICT (query) DO UPDATE SET searched_at = NOW();
	`
	if _, err := s.db.Exec(ctx, q, query); err != nil {
		return fmt.Errorf("failed to insert query: %w", err)
	}
	return nil
}

// ListQueries returns up to limit queries, most recent first
func (s *PostgresStore) ListQueries(ctx context.Context, limit int) ([]string, error) {
	const q = `SELECT query FROM search_history ORDER BY searched_at DESC, id DESC LIMIT $1`
	rows, err := s.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer rows.Close()

	queries := []string{}
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		queries = append(queries, query)
	}
	return queries, rows.Err()
}

// PruneQueries keeps only the limit most recent queries
func (s *PostgresStore) PruneQueries(ctx context.Context, limit int) error {
	const q = `
		DELETE FROM search_history WHERE id NOT IN (
			SELECT id FROM search_history ORDER BY searched_at DESC, id DESC LIMIT $1
		);
	`
	if _, err := s.db.Exec(ctx, q, limit); err != nil {
		return fmt.Errorf("failed to prune queries: %w", err)
	}
	return nil
}

// ClearQueries removes all recorded queries
func (s *PostgresStore) ClearQueries(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM search_history`); err != nil {
		return fmt.Errorf("failed to clear queries: %w", err)
	}
	return nil
}

// GetSetting returns the raw JSON value stored under key
func (s *PostgresStore) GetSetting(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM app_settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting upserts the JSON value for key
func (s *PostgresStore) SetSetting(ctx context.Context, key string, value []byte, description string) error {
	const q = `
		INSERT INTO app_settings (key, value, description) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, description = EXCLUDED.description, updated_at = NOW();
	`
	if _, err := s.db.Exec(ctx, q, key, value, description); err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}
