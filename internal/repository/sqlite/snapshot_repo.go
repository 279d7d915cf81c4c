// Package sqlite persists the AppState document in a local key-value
// table, giving the local variant durable single-file storage without a
// server.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	_ "modernc.org/sqlite"
)

const snapshotKey = "appstate"

// SnapshotRepository stores the serialized AppState under a single key.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository opens (and creates) the database file.
func NewSnapshotRepository(dbPath string) (*SnapshotRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}

	return &SnapshotRepository{db: db}, nil
}

// Close closes the underlying database.
func (r *SnapshotRepository) Close() error {
	return r.db.Close()
}

// Load reads and decodes the stored snapshot.
func (r *SnapshotRepository) Load(ctx context.Context) (*domain.AppState, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, snapshotKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	var state domain.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	state.Normalize()
	return &state, nil
}

// Save upserts the serialized snapshot.
func (r *SnapshotRepository) Save(ctx context.Context, state *domain.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		snapshotKey, data)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
