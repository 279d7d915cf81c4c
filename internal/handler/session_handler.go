package handler

import (
	"net/http"

	"github.com/arkhew/moneta/moneta-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SessionHandler handles session lifecycle requests
type SessionHandler struct {
	store *service.StateStore
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(store *service.StateStore) *SessionHandler {
	return &SessionHandler{store: store}
}

// Reset handles POST /api/v1/session/reset. It discards all in-memory
// state without touching the persisted snapshot, so a restart or reload
// recovers the saved data.
func (h *SessionHandler) Reset(c echo.Context) error {
	h.store.Reset()

	log.Info().Msg("Session state reset")
	return c.JSON(http.StatusOK, map[string]string{
		"status":       "reset",
		"currentMonth": h.store.CurrentMonthKey(),
	})
}
