package app

import (
	"context"
	"io"
	"time"

	"github.com/opsbots/statusbot/internal/domain/repository"
	"github.com/opsbots/statusbot/internal/infrastructure/config"
	"github.com/opsbots/statusbot/internal/infrastructure/observability"
	"github.com/opsbots/statusbot/internal/infrastructure/server"
)

// Application holds all application dependencies and lifecycle.
type Application struct {
	config    *config.Config
	watcher   *config.Watcher
	logger    *AtomicLogger
	telemetry *observability.Telemetry

	// Storage
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	dbPinger pinger
	dbCloser io.Closer

	// Infrastructure clients
	clients *Clients

	// HTTP layer
	handlers *server.Handlers
	server   *server.Server
}

// pinger matches the readiness probe dependency of the health handler.
type pinger interface {
	Ping(ctx context.Context) error
}

// New creates a new Application instance.
func New(configPath string) (*Application, error) {
	app := &Application{}

	if err := app.bootstrap(configPath); err != nil {
		return nil, err
	}

	return app, nil
}

// Start runs the application until context is cancelled.
func (app *Application) Start(ctx context.Context) error {
	app.logger.Get().Info("starting statusbot",
		"port", app.config.Server.Port,
		"storage", app.config.Storage.Type,
	)

	return app.server.Run(ctx)
}

// Shutdown gracefully stops the application.
func (app *Application) Shutdown() error {
	app.logger.Get().Info("shutting down statusbot")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.Get().Error("failed to close config watcher", "error", err)
		}
	}

	if app.telemetry != nil {
		if err := app.telemetry.Shutdown(ctx); err != nil {
			app.logger.Get().Error("failed to shutdown telemetry", "error", err)
		}
	}

	if app.dbCloser != nil {
		if err := app.dbCloser.Close(); err != nil {
			app.logger.Get().Error("failed to close database", "error", err)
			return err
		}
	}

	app.logger.Get().Info("statusbot stopped")
	return nil
}
