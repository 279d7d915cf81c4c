package service

import (
	"context"
	"errors"
	"sync"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/arkhew/moneta/moneta-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// SettingsService holds device-local preferences (theme, onboarding flag)
// behind an injected repository. Preferences live outside AppState so a
// remote sync never overwrites them.
type SettingsService struct {
	mu        sync.RWMutex
	settings  domain.Settings
	repo      domain.SettingsRepository
	publisher websocket.EventPublisher
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo domain.SettingsRepository, publisher websocket.EventPublisher) *SettingsService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &SettingsService{
		settings:  domain.DefaultSettings(),
		repo:      repo,
		publisher: publisher,
	}
}

// Load reads persisted preferences; missing or unreadable preferences
// fall back to defaults.
func (s *SettingsService) Load(ctx context.Context) {
	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			log.Warn().Err(err).Msg("Failed to load settings, using defaults")
		}
		settings = domain.DefaultSettings()
	}
	if !settings.Theme.IsValid() {
		settings.Theme = domain.ThemeSystem
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

// Get returns the current preferences.
func (s *SettingsService) Get() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the preferences and persists them in the background.
func (s *SettingsService) Update(settings domain.Settings) (domain.Settings, error) {
	if !settings.Theme.IsValid() {
		return domain.Settings{}, domain.ErrInvalidInput
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.repo.SaveSettings(ctx, settings); err != nil {
			log.Error().Err(err).Msg("Failed to persist settings")
		}
	}()

	s.publisher.Publish(websocket.SettingsUpdated(settings))
	return settings, nil
}
