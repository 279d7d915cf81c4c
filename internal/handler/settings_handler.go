package handler

import (
	"errors"
	"net/http"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/arkhew/moneta/moneta-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SettingsHandler handles preference HTTP requests
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// UpdateSettingsRequest represents the update settings request body
type UpdateSettingsRequest struct {
	Theme          string `json:"theme"`
	OnboardingSeen bool   `json:"onboardingSeen"`
}

// Get handles GET /api/v1/settings
func (h *SettingsHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.settings.Get())
}

// Update handles PUT /api/v1/settings
func (h *SettingsHandler) Update(c echo.Context) error {
	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	settings, err := h.settings.Update(domain.Settings{
		Theme:          domain.ThemeMode(req.Theme),
		OnboardingSeen: req.OnboardingSeen,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "theme", Message: "Must be one of: system, dark, light"},
			})
		}
		log.Error().Err(err).Msg("Failed to update settings")
		return NewInternalError(c, "Failed to update settings")
	}

	log.Info().Str("theme", string(settings.Theme)).Msg("Settings updated")
	return c.JSON(http.StatusOK, settings)
}
