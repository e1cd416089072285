package hoststore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS objects (
	path       TEXT PRIMARY KEY,
	meta_json  TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS states (
	path       TEXT PRIMARY KEY,
	value_json TEXT NOT NULL,
	ack        INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);
`

// SQLiteStore is a Store backed by a local SQLite database. Paths passed to
// the local methods are resolved against the adapter namespace; foreign
// reads use the path as given.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
}

// NewSQLiteStore opens (or creates) the database at dbPath and runs
// migrations. namespace is the adapter instance prefix, e.g. "fleetmirror.0".
func NewSQLiteStore(dbPath, namespace string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db, namespace: namespace}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// qualify resolves a local path against the adapter namespace.
func (s *SQLiteStore) qualify(path string) string {
	if s.namespace == "" {
		return path
	}
	return s.namespace + "." + path
}

// GetObject returns the metadata descriptor at path, or nil if absent.
func (s *SQLiteStore) GetObject(ctx context.Context, path string) (*ObjectMeta, error) {
	full := s.qualify(path)

	var metaJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT meta_json FROM objects WHERE path = ?", full).Scan(&metaJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, NewStoreError("get object", full, err)
	}

	var meta ObjectMeta
	if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
		return nil, NewStoreError("get object", full, err)
	}
	return &meta, nil
}

// SetObject writes the metadata descriptor at path. With createOnly an
// existing descriptor is left untouched.
func (s *SQLiteStore) SetObject(ctx context.Context, path string, meta *ObjectMeta, createOnly bool) error {
	full := s.qualify(path)

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return NewStoreError("set object", full, err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	query := `INSERT INTO objects (path, meta_json, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET meta_json = excluded.meta_json, updated_at = excluded.updated_at`
	if createOnly {
		query = `INSERT INTO objects (path, meta_json, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(path) DO NOTHING`
	}

	if _, err := s.db.ExecContext(ctx, query, full, string(metaJSON), now, now); err != nil {
		return NewStoreError("set object", full, err)
	}
	return nil
}

// GetState returns the current value at path and whether one exists.
func (s *SQLiteStore) GetState(ctx context.Context, path string) (any, bool, error) {
	return s.getState(ctx, s.qualify(path))
}

// SetState writes the value at path with the given acknowledged flag.
func (s *SQLiteStore) SetState(ctx context.Context, path string, value any, ack bool) error {
	full := s.qualify(path)

	valueJSON, err := json.Marshal(value)
	if err != nil {
		return NewStoreError("set state", full, err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO states (path, value_json, ack, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			value_json = excluded.value_json,
			ack = excluded.ack,
			updated_at = excluded.updated_at`,
		full, string(valueJSON), boolToInt(ack), now)
	if err != nil {
		return NewStoreError("set state", full, err)
	}
	return nil
}

// GetForeignState reads a fully qualified path without namespace resolution.
func (s *SQLiteStore) GetForeignState(ctx context.Context, path string) (any, bool, error) {
	return s.getState(ctx, path)
}

func (s *SQLiteStore) getState(ctx context.Context, full string) (any, bool, error) {
	var valueJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT value_json FROM states WHERE path = ?", full).Scan(&valueJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, NewStoreError("get state", full, err)
	}

	var value any
	if err := json.Unmarshal([]byte(valueJSON), &value); err != nil {
		return nil, false, NewStoreError("get state", full, err)
	}
	return value, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
