package api

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/amterp/stacks/internal/controller"
	"github.com/amterp/stacks/internal/policy"
	"github.com/amterp/stacks/internal/store"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileChangeType indicates what type of change occurred.
type FileChangeType string

const (
	FileChangeCreated  FileChangeType = "created"
	FileChangeModified FileChangeType = "modified"
	FileChangeDeleted  FileChangeType = "deleted"
)

// ConfigChange is broadcast after the config file changes on disk.
// Error is set when the new file could not be applied; the previous
// policy then stays in effect.
type ConfigChange struct {
	Type         FileChangeType `json:"type"`
	Path         string         `json:"path"`
	BaseCellSize float64        `json:"base_cell_size,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// ConfigWatcherSubscriber receives config change notifications.
type ConfigWatcherSubscriber interface {
	OnConfigChange(change ConfigChange)
}

const debounceDelay = 100 * time.Millisecond

// ConfigWatcher watches the config file and re-applies its policy to the
// controller whenever it changes.
type ConfigWatcher struct {
	watcher     *fsnotify.Watcher
	configPath  string
	store       store.ConfigStore
	controller  *controller.Controller
	logger      *zap.Logger
	mu          sync.RWMutex
	subscribers []ConfigWatcherSubscriber
	debounce    *time.Timer
	debounceMu  sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewConfigWatcher creates a watcher for the store's config file.
func NewConfigWatcher(cfgStore store.ConfigStore, ctrl *controller.Controller, logger *zap.Logger) (*ConfigWatcher, error) {
	if cfgStore.Path() == "" {
		return nil, fmt.Errorf("config path is unknown")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &ConfigWatcher{
		watcher:    watcher,
		configPath: filepath.Clean(cfgStore.Path()),
		store:      cfgStore,
		controller: ctrl,
		logger:     logger,
		stopCh:     make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber to receive config change notifications.
func (cw *ConfigWatcher) Subscribe(sub ConfigWatcherSubscriber) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.subscribers = append(cw.subscribers, sub)
}

// Start begins watching. The config file's directory is watched rather than
// the file itself so that editors which save by rename are still seen.
func (cw *ConfigWatcher) Start() error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	if cw.stopped {
		cw.mu.Unlock()
		return fmt.Errorf("config watcher cannot be restarted after stop")
	}
	cw.running = true
	cw.mu.Unlock()

	if err := cw.watcher.Add(filepath.Dir(cw.configPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(cw.configPath), err)
	}

	go cw.run()
	return nil
}

// Stop stops watching for changes.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	if !cw.running || cw.stopped {
		cw.mu.Unlock()
		return nil
	}
	cw.running = false
	cw.stopped = true
	cw.mu.Unlock()

	// Cancel a pending reload so it can't fire after stop
	cw.debounceMu.Lock()
	if cw.debounce != nil {
		cw.debounce.Stop()
		cw.debounce = nil
	}
	cw.debounceMu.Unlock()

	close(cw.stopCh)
	return cw.watcher.Close()
}

func (cw *ConfigWatcher) run() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("Config watcher error", zap.Error(err))

		case <-cw.stopCh:
			return
		}
	}
}

func (cw *ConfigWatcher) handleEvent(event fsnotify.Event) {
	changeType, ok := cw.classifyChange(event)
	if !ok {
		return
	}

	// Debounce: wait before reloading to coalesce rapid writes
	cw.debounceMu.Lock()
	if cw.debounce != nil {
		cw.debounce.Stop()
	}
	cw.debounce = time.AfterFunc(debounceDelay, func() {
		cw.reload(changeType)
	})
	cw.debounceMu.Unlock()
}

// classifyChange reports whether event touches the config file and how.
func (cw *ConfigWatcher) classifyChange(event fsnotify.Event) (FileChangeType, bool) {
	if filepath.Clean(event.Name) != cw.configPath {
		return "", false
	}

	switch {
	case event.Op&fsnotify.Create != 0:
		return FileChangeCreated, true
	case event.Op&fsnotify.Write != 0:
		return FileChangeModified, true
	case event.Op&fsnotify.Remove != 0:
		return FileChangeDeleted, true
	case event.Op&fsnotify.Rename != 0:
		return FileChangeDeleted, true // Rename source is effectively deleted
	default:
		return "", false
	}
}

// reload reads the config and applies it. A missing file yields defaults.
func (cw *ConfigWatcher) reload(changeType FileChangeType) {
	cw.mu.RLock()
	if cw.stopped {
		cw.mu.RUnlock()
		return
	}
	subs := make([]ConfigWatcherSubscriber, len(cw.subscribers))
	copy(subs, cw.subscribers)
	cw.mu.RUnlock()

	change := ConfigChange{Type: changeType, Path: cw.configPath}

	var p policy.Policy
	cfg, err := cw.store.Load()
	if err == nil {
		p = policy.FromConfig(cfg)
		err = p.Validate()
	}
	if err != nil {
		cw.logger.Warn("Ignoring invalid config change", zap.String("path", cw.configPath), zap.Error(err))
		change.Error = err.Error()
		notifyConfig(subs, change)
		return
	}

	change.BaseCellSize = p.BaseCellSize
	notifyConfig(subs, change)

	if err := cw.controller.SetPolicy(p); err != nil {
		cw.logger.Warn("Failed to apply config", zap.Error(err))
		return
	}
	cw.logger.Info("Config reloaded", zap.String("path", cw.configPath), zap.Float64("base_cell_size", p.BaseCellSize))
}

func notifyConfig(subs []ConfigWatcherSubscriber, change ConfigChange) {
	for _, sub := range subs {
		sub.OnConfigChange(change)
	}
}
