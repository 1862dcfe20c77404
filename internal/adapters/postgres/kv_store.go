package postgres_adapter

import (
	"context"
	"errors"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/port"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB - то, что нужно хранилищу от *pgxpool.Pool.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	createTableQuery = `CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	selectValueQuery = `SELECT value FROM kv_store WHERE key = $1`
	upsertValueQuery = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// PostgresKeyValueStore - реализация KeyValueStorePort поверх таблицы kv_store.
type PostgresKeyValueStore struct {
	db DB
}

func NewPostgresKeyValueStore(db DB) (*PostgresKeyValueStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database pool cannot be nil")
	}
	return &PostgresKeyValueStore{db: db}, nil
}

// EnsureSchema создает таблицу, если ее нет.
func (r *PostgresKeyValueStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createTableQuery); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}

func (r *PostgresKeyValueStore) Read(ctx context.Context, key string) (string, bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresKeyValueStore",
		"method":    "Read",
		"key":       key,
	})

	var value string
	err := r.db.QueryRow(ctx, selectValueQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Key not found.", nil)
			return "", false, nil
		}
		repoLogger.Error("Failed to read key", err, port.Fields{"query": selectValueQuery})
		return "", false, fmt.Errorf("failed to read key '%s': %w", key, err)
	}

	return value, true, nil
}

func (r *PostgresKeyValueStore) Write(ctx context.Context, key, value string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresKeyValueStore",
		"method":    "Write",
		"key":       key,
	})

	if _, err := r.db.Exec(ctx, upsertValueQuery, key, value); err != nil {
		repoLogger.Error("Failed to write key", err, nil)
		return fmt.Errorf("failed to write key '%s': %w", key, err)
	}

	repoLogger.Debug("Key written.", port.Fields{"bytes": len(value)})
	return nil
}
