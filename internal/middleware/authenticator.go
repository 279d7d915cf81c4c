package middleware

import "github.com/labstack/echo/v4"

// Authenticator is implemented by the JWT and session-token middlewares
// so routes can be wired without knowing which auth mode is configured.
type Authenticator interface {
	Authenticate() echo.MiddlewareFunc
}

var (
	_ Authenticator = (*AuthMiddleware)(nil)
	_ Authenticator = (*SessionTokenMiddleware)(nil)
)

// NoopAuthenticator passes every request through. Used for local
// single-user deployments with no credential configured.
type NoopAuthenticator struct{}

// Authenticate returns a pass-through middleware
func (NoopAuthenticator) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return next
	}
}
