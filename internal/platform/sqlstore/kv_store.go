// Package sqlstore provides the database/sql implementation of the
// store.KV interface, supporting SQLite for local single-user deployments
// and PostgreSQL for hosted ones.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Harmony-cloud-01/mandarin-app/internal/store"
)

// KVStore implements the store.KV interface on top of a single kv_entries
// table. Values are opaque strings; the learning core stores JSON documents
// in them.
type KVStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure KVStore implements the store.KV interface.
var _ store.KV = (*KVStore)(nil)

// NewKVStore creates a new SQL-backed KV store. It accepts a database
// connection that should be opened (and migrated) by the caller.
// If logger is nil, a default logger will be used.
func NewKVStore(db *sql.DB, logger *slog.Logger) *KVStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil for KVStore")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &KVStore{
		db:     db,
		logger: logger.With(slog.String("component", "kv_store")),
	}
}

// Get implements store.KV.Get.
func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv_entries WHERE k = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrKeyNotFound
	}
	if err != nil {
		s.logger.Error("failed to read key", "error", err, "key", key)
		return "", fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return value, nil
}

// Set implements store.KV.Set. The upsert form is accepted by both SQLite
// and PostgreSQL.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entries (k, v) VALUES ($1, $2)
		 ON CONFLICT (k) DO UPDATE SET v = excluded.v`,
		key, value)
	if err != nil {
		s.logger.Error("failed to write key", "error", err, "key", key)
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return nil
}

// Remove implements store.KV.Remove.
func (s *KVStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE k = $1`, key)
	if err != nil {
		s.logger.Error("failed to remove key", "error", err, "key", key)
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return nil
}
