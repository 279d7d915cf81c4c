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

// SettingsRepository stores device-local preferences in
// <dir>/settings.json, next to the snapshot regardless of which snapshot
// backend is active.
type SettingsRepository struct {
	path string
}

// NewSettingsRepository creates the data directory if needed.
func NewSettingsRepository(dir string) (*SettingsRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &SettingsRepository{path: filepath.Join(dir, "settings.json")}, nil
}

// LoadSettings reads persisted preferences.
func (r *SettingsRepository) LoadSettings(ctx context.Context) (domain.Settings, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Settings{}, domain.ErrSnapshotNotFound
		}
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// SaveSettings atomically replaces the settings file.
func (r *SettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return writeAtomic(r.path, data)
}
