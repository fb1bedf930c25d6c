package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Store holds the active configuration and swaps it when the file on disk
// changes. Sessions read a copy at start, so a reload only affects new ones.
type Store struct {
	mu   sync.RWMutex
	cfg  WaterSortConfig
	path string
}

// NewStore creates a store with an initial configuration loaded from path.
// path may be empty when the configuration came from the embedded default.
func NewStore(cfg WaterSortConfig, path string) *Store {
	return &Store{cfg: cfg, path: path}
}

// Current returns the active configuration.
func (s *Store) Current() WaterSortConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Path returns the watched file, empty for the embedded default.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the file. An invalid file leaves the active config in place.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	cfg, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Watch reloads the config whenever its file is written or replaced.
// It blocks until ctx is cancelled. Without a file it returns immediately.
func (s *Store) Watch(ctx context.Context, logger *log.Logger) error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory and filter by name.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	target := filepath.Clean(s.path)
	logger.Debug("Watching config", "path", target)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				logger.Warn("Config reload failed, keeping previous config", "path", target, "err", err)
				continue
			}
			logger.Info("Config reloaded", "path", target)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error", "err", err)

		case <-ctx.Done():
			return nil
		}
	}
}
