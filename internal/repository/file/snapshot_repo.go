// Package file persists the AppState as a single JSON document on local
// disk. Writes go through a temp file and rename so a crash mid-write
// never corrupts the previous snapshot.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
)

// SnapshotRepository stores the AppState in <dir>/appstate.json.
type SnapshotRepository struct {
	path string
}

// NewSnapshotRepository creates the data directory if needed.
func NewSnapshotRepository(dir string) (*SnapshotRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &SnapshotRepository{path: filepath.Join(dir, "appstate.json")}, nil
}

// Load reads and decodes the snapshot file.
func (r *SnapshotRepository) Load(ctx context.Context) (*domain.AppState, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var state domain.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	state.Normalize()
	return &state, nil
}

// Save atomically replaces the snapshot file.
func (r *SnapshotRepository) Save(ctx context.Context, state *domain.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return writeAtomic(r.path, data)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
