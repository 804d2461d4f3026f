package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/cardfolio/cardfolio/internal/api/http"
	"github.com/cardfolio/cardfolio/internal/api/service"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/cardfolio/cardfolio/internal/api/store/drivers/sqlite"
	"github.com/cardfolio/cardfolio/pkg/slogx"
)

// BuildVersion is overridden via ldflags in release builds.
var BuildVersion = "v0.1.0"

const minSecretBytes = 32

// Application encapsulates the API service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	sessionService     *service.SessionService
	credentialService  *service.CredentialService
	bootstrapService   *service.BootstrapService
	userService        *service.UserService
	cardService        *service.CardService
	preferencesService *service.PreferencesService
	onboardingService  *service.OnboardingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "cardfolio-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	secret, err := app.resolveSessionSecret()
	if err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices(secret)
	app.initHTTP()

	return app, nil
}

// resolveSessionSecret enforces the secret policy: production requires a
// strong configured secret, while dev generates an ephemeral one so the
// service still starts out of the box. A generated secret invalidates all
// sessions on restart, hence the loud warning.
func (app *Application) resolveSessionSecret() ([]byte, error) {
	if app.cfg.SessionSecret != "" {
		if len(app.cfg.SessionSecret) < minSecretBytes {
			return nil, fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSecretBytes)
		}
		return []byte(app.cfg.SessionSecret), nil
	}

	if app.cfg.IsProd() {
		return nil, errors.New("SESSION_SECRET is required in production")
	}

	secret := make([]byte, minSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	app.logger.Warn("SESSION_SECRET not set; generated an ephemeral secret, all sessions reset on restart",
		"hint", "set SESSION_SECRET to a stable value, e.g. "+hex.EncodeToString(secret[:8])+"...",
	)
	return secret, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("api service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down api service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("api service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices(secret []byte) {
	app.sessionService = &service.SessionService{
		Secret:           secret,
		MaxAge:           app.cfg.SessionMaxAge,
		RefreshThreshold: app.cfg.RefreshThreshold,
		Leeway:           app.cfg.SessionLeeway,
	}
	app.credentialService = &service.CredentialService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{Store: app.db}
	app.userService = &service.UserService{Store: app.db}
	app.cardService = &service.CardService{Store: app.db}
	app.preferencesService = &service.PreferencesService{Store: app.db}
	app.onboardingService = &service.OnboardingService{Store: app.db}
}

// initHTTP initializes the router and HTTP server
func (app *Application) initHTTP() {
	cookies := httpapi.CookieWriter{
		Secure: app.cfg.IsProd(),
		MaxAge: app.cfg.SessionMaxAge,
	}

	app.router = httpapi.NewRouter(BuildVersion, app.cfg.CORSOrigin, cookies, app.db, app.logger)
	app.router.SessionService = app.sessionService
	app.router.CredentialService = app.credentialService
	app.router.BootstrapService = app.bootstrapService
	app.router.UserService = app.userService
	app.router.CardService = app.cardService
	app.router.PreferencesService = app.preferencesService
	app.router.OnboardingService = app.onboardingService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
