package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc is invoked with the freshly loaded config after a successful
// reload.
type ReloadFunc func(*Config)

// Watcher reloads the configuration when the config file changes on disk.
// Only settings the callback chooses to apply take effect at runtime; the
// rest (listener port, storage backend) still require a restart.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	onReload ReloadFunc

	mu      sync.Mutex
	current *Config

	done chan struct{}
}

// NewWatcher creates a watcher for the given config file path.
func NewWatcher(path string, initial *Config, logger *slog.Logger, onReload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	// Watch the directory: editors and configmap mounts replace the file,
	// which drops a watch registered on the file itself.
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		logger:   logger,
		onReload: onReload,
		current:  initial,
		done:     make(chan struct{}),
	}

	go w.run()

	return w, nil
}

// Current returns the most recently loaded config.
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Reload re-reads the config file and applies the callback.
// A failed reload keeps the previous config.
func (w *Watcher) Reload() error {
	cfg, err := Load(w.path)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	if w.onReload != nil {
		w.onReload(cfg)
	}

	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := w.Reload(); err != nil {
				w.logger.Error("config reload failed", "path", w.path, "error", err)
				continue
			}
			w.logger.Info("config reloaded", "path", w.path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}
