package testutil

import (
	"context"
	"sync"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
)

// MockSnapshotRepository is a mock implementation of domain.SnapshotRepository.
// It records every saved snapshot so tests can assert on persistence without
// a real backend.
type MockSnapshotRepository struct {
	mu      sync.Mutex
	State   *domain.AppState
	Saves   []*domain.AppState
	LoadErr error
	SaveErr error
}

// NewMockSnapshotRepository creates a MockSnapshotRepository with no
// stored snapshot, so Load reports domain.ErrSnapshotNotFound.
func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{}
}

// Load returns the configured state or error
func (m *MockSnapshotRepository) Load(ctx context.Context) (*domain.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.State == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return m.State.Clone(), nil
}

// Save records the snapshot
func (m *MockSnapshotRepository) Save(ctx context.Context, state *domain.AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.State = state.Clone()
	m.Saves = append(m.Saves, m.State)
	return nil
}

// SaveCount returns how many snapshots were saved
func (m *MockSnapshotRepository) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saves)
}

// LastSave returns the most recently saved snapshot, or nil
func (m *MockSnapshotRepository) LastSave() *domain.AppState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Saves) == 0 {
		return nil
	}
	return m.Saves[len(m.Saves)-1]
}

// MockSettingsRepository is a mock implementation of domain.SettingsRepository
type MockSettingsRepository struct {
	mu       sync.Mutex
	Settings *domain.Settings
	LoadErr  error
	SaveErr  error
}

// NewMockSettingsRepository creates a new MockSettingsRepository
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

// LoadSettings returns the configured settings or error
func (m *MockSettingsRepository) LoadSettings(ctx context.Context) (domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return domain.Settings{}, m.LoadErr
	}
	if m.Settings == nil {
		return domain.Settings{}, domain.ErrSnapshotNotFound
	}
	return *m.Settings, nil
}

// SaveSettings stores the settings
func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Settings = &settings
	return nil
}
