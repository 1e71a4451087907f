package app

import (
	"fmt"

	"github.com/opsbots/statusbot/internal/infrastructure/config"
)

func (app *Application) bootstrap(configPath string) error {
	// 1. Load configuration
	if err := app.loadConfig(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// 2. Setup logger
	if err := app.setupLogger(); err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}

	// 3. Setup telemetry (OpenTelemetry)
	if err := app.setupTelemetry(); err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}

	// 4. Setup config watcher with reload callback
	if err := app.setupWatcher(configPath); err != nil {
		return fmt.Errorf("setting up config watcher: %w", err)
	}

	// 5. Initialize storage layer
	if err := app.initializeStorage(); err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	// 6. Initialize infrastructure clients
	if err := app.initializeClients(); err != nil {
		return fmt.Errorf("initializing clients: %w", err)
	}

	// 7. Initialize HTTP handlers
	if err := app.initializeHandlers(); err != nil {
		return fmt.Errorf("initializing handlers: %w", err)
	}

	// 8. Setup HTTP server
	if err := app.setupServer(); err != nil {
		return fmt.Errorf("setting up server: %w", err)
	}

	return nil
}

func (app *Application) loadConfig(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	app.config = cfg
	return nil
}

// setupWatcher enables config hot reload. Only the log level and format are
// applied at runtime.
func (app *Application) setupWatcher(configPath string) error {
	if configPath == "" {
		return nil
	}

	watcher, err := config.NewWatcher(configPath, app.config, app.logger.Get(), func(cfg *config.Config) {
		app.logger.Store(newSlogLogger(cfg.Logging.Level, cfg.Logging.Format))
	})
	if err != nil {
		// Hot reload is a convenience; startup proceeds without it.
		app.logger.Get().Warn("config watcher disabled", "error", err)
		return nil
	}

	app.watcher = watcher
	return nil
}
