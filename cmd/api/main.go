package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arkhew/moneta/moneta-backend/internal/config"
	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/arkhew/moneta/moneta-backend/internal/handler"
	"github.com/arkhew/moneta/moneta-backend/internal/middleware"
	"github.com/arkhew/moneta/moneta-backend/internal/repository"
	filerepo "github.com/arkhew/moneta/moneta-backend/internal/repository/file"
	"github.com/arkhew/moneta/moneta-backend/internal/service"
	"github.com/arkhew/moneta/moneta-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize snapshot backend
	snapshotRepo, cleanup, err := repository.NewSnapshotRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", string(cfg.Backend)).Msg("Failed to initialize backend")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cleanup(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Backend cleanup failed")
		}
	}()

	// Preferences stay on local disk regardless of the snapshot backend
	settingsRepo, err := filerepo.NewSettingsRepository(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize settings storage")
	}

	// Initialize websocket hub
	hub := websocket.NewHub()

	// Initialize services
	store := service.NewStateStore(snapshotRepo, hub)
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load state")
	}
	settingsService := service.NewSettingsService(settingsRepo, hub)
	settingsService.Load(ctx)
	calculationService := service.NewCalculationService()

	// Subscribe to external snapshot changes when the backend supports it
	if subscriber, ok := snapshotRepo.(domain.SnapshotSubscriber); ok {
		cancelSub, err := subscriber.Subscribe(ctx, store.ApplyExternalState)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to subscribe to snapshot changes")
		}
		defer cancelSub()
		log.Info().Str("backend", string(cfg.Backend)).Msg("Live sync enabled")
	}

	// Pick the authenticator for the configured credential
	auth, err := newAuthenticator(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(store, calculationService)
	monthHandler := handler.NewMonthHandler(store, calculationService)
	categoryHandler := handler.NewCategoryHandler(store)
	expenseHandler := handler.NewExpenseHandler(store, calculationService)
	dashboardHandler := handler.NewDashboardHandler(store, calculationService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	sessionHandler := handler.NewSessionHandler(store)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Rate limiting middleware
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, auth, accountHandler, monthHandler, categoryHandler, expenseHandler, dashboardHandler, settingsHandler, sessionHandler, wsHandler)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("backend", string(cfg.Backend)).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}

	log.Info().Msg("Server exited")
}

// newAuthenticator selects JWT auth when Auth0 is configured, a static
// session token when one is set, and no auth otherwise.
func newAuthenticator(cfg *config.Config) (middleware.Authenticator, error) {
	if cfg.Auth0Domain != "" {
		auth, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			return nil, err
		}
		return auth, nil
	}
	if cfg.SessionToken != "" {
		return middleware.NewSessionTokenMiddleware(cfg.SessionToken), nil
	}
	log.Warn().Msg("No credential configured, API is unauthenticated")
	return middleware.NoopAuthenticator{}, nil
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID))
			if subject := middleware.GetSubject(c); subject != "" {
				event = event.Str("subject", subject)
			}
			event.Msg("request")

			return nil
		}
	}
}
