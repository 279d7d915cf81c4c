package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SessionTokenMiddleware authenticates requests against a single
// pre-shared session token. Used for deployments without an identity
// provider.
type SessionTokenMiddleware struct {
	token string
}

// NewSessionTokenMiddleware creates a new SessionTokenMiddleware
func NewSessionTokenMiddleware(token string) *SessionTokenMiddleware {
	return &SessionTokenMiddleware{token: token}
}

// Authenticate returns an Echo middleware that validates the session token
func (m *SessionTokenMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "Missing authorization header")
			}

			// Check Bearer prefix
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorizedError(c, "Invalid authorization header format")
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(m.token)) != 1 {
				log.Debug().Msg("Session token mismatch")
				return unauthorizedError(c, "Invalid session token")
			}

			return next(c)
		}
	}
}
