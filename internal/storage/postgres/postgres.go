// Package postgres implements storage.Store on a single PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
)

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS storefront_kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	selectSQL = `SELECT value FROM storefront_kv WHERE key = $1`

	upsertSQL = `INSERT INTO storefront_kv (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// Store keeps one row per key in storefront_kv.
type Store struct {
	db database.DBTX
}

// New creates a store over db, typically a *pgxpool.Pool.
func New(db database.DBTX) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the storefront_kv table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) (err error) {
	ctx, end := database.TraceQuery(ctx, "postgresql", "EnsureSchema", schemaSQL)
	defer func() { end(err) }()

	if _, err = s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create storefront_kv: %w", err)
	}
	return nil
}

// Get retrieves key. A missing row returns ok == false.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	ctx, end := database.TraceQuery(ctx, "postgresql", "Get", selectSQL)
	defer func() { end(err) }()

	if err = s.db.QueryRow(ctx, selectSQL, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts key.
func (s *Store) Set(ctx context.Context, key, value string) (err error) {
	ctx, end := database.TraceQuery(ctx, "postgresql", "Set", upsertSQL)
	defer func() { end(err) }()

	if _, err = s.db.Exec(ctx, upsertSQL, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection when the underlying handle supports it.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.db.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
