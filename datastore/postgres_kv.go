package datastore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresKV stores documents in the kv_store table
type PostgresKV struct {
	database *sql.DB
}

func NewPostgresKV(db *sql.DB) (PostgresKV, error) {
	if db == nil {
		return PostgresKV{}, fmt.Errorf("nil database connection")
	}
	return PostgresKV{database: db}, nil
}

// Get retrieves the document stored under key
func (pgkv PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	db := pgkv.database

	sqlStatement := `
		SELECT value
		FROM kv_store
		WHERE key = $1`

	var value []byte
	err := db.QueryRowContext(ctx, sqlStatement, key).Scan(&value)

	switch err {
	case sql.ErrNoRows:
		return nil, NoRowsError{true, err}
	case nil:
		return value, nil
	default:
		return nil, fmt.Errorf("failed to read key %s: %v", key, err)
	}
}

// Put inserts or replaces the document stored under key
func (pgkv PostgresKV) Put(ctx context.Context, key string, value []byte) error {
	db := pgkv.database

	sqlStatement := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := db.ExecContext(ctx, sqlStatement, key, string(value)); err != nil {
		return fmt.Errorf("failed to write key %s: %v", key, err)
	}
	return nil
}
