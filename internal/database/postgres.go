package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusbuzz/campusbuzz-api/internal/entity"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a Store persisting each key as a row in a single
// kv table. The registry and identity store treat the database as an opaque
// slot, so no relational schema beyond the kv table exists.
func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_slots WHERE key = $1`, key,
	).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entity.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to load key %q: %w", key, err)
	}
	return value, nil
}

func (s *postgresStore) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM kv_slots WHERE key = $1`, key,
	); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
