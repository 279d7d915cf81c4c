package domain

import "context"

// ThemeMode is the persisted theme preference.
type ThemeMode string

const (
	ThemeSystem ThemeMode = "system"
	ThemeDark   ThemeMode = "dark"
	ThemeLight  ThemeMode = "light"
)

// IsValid reports whether the theme mode is one of the three states.
func (t ThemeMode) IsValid() bool {
	switch t {
	case ThemeSystem, ThemeDark, ThemeLight:
		return true
	default:
		return false
	}
}

// Settings holds device-local preferences, kept apart from AppState so a
// remote sync never overwrites them.
type Settings struct {
	Theme          ThemeMode `json:"theme"`
	OnboardingSeen bool      `json:"onboardingSeen"`
}

// DefaultSettings follows the system theme with onboarding not yet seen.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeSystem}
}

// SettingsRepository persists device-local preferences.
type SettingsRepository interface {
	LoadSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) error
}
