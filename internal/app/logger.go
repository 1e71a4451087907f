package app

import (
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// AtomicLogger holds a swappable slog.Logger so config reloads can change
// the log level without tearing down the application.
type AtomicLogger struct {
	ptr atomic.Pointer[slog.Logger]
}

// NewAtomicLogger creates an AtomicLogger wrapping the given logger.
func NewAtomicLogger(logger *slog.Logger) *AtomicLogger {
	al := &AtomicLogger{}
	al.ptr.Store(logger)
	return al
}

// Get returns the current logger.
func (al *AtomicLogger) Get() *slog.Logger {
	return al.ptr.Load()
}

// Store replaces the current logger.
func (al *AtomicLogger) Store(logger *slog.Logger) {
	al.ptr.Store(logger)
}

// newSlogLogger builds a logger from the configured level and format.
func newSlogLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func (app *Application) setupLogger() error {
	logger := newSlogLogger(app.config.Logging.Level, app.config.Logging.Format)
	app.logger = NewAtomicLogger(logger)
	slog.SetDefault(logger)
	return nil
}

// slogAdapter adapts *slog.Logger to the use case Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Debug(msg string, keysAndValues ...any) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a *slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Info(msg, keysAndValues...)
}

func (a *slogAdapter) Warn(msg string, keysAndValues ...any) {
	a.logger.Warn(msg, keysAndValues...)
}

func (a *slogAdapter) Error(msg string, keysAndValues ...any) {
	a.logger.Error(msg, keysAndValues...)
}
