package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amterp/stacks/internal/controller"
	"github.com/amterp/stacks/internal/layout"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/policy"
	"github.com/amterp/stacks/internal/store"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func TestClassifyChange(t *testing.T) {
	cw := &ConfigWatcher{configPath: "/home/me/.config/stacks/config.toml"}

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		wantType FileChangeType
		wantOK   bool
	}{
		{"created", "/home/me/.config/stacks/config.toml", fsnotify.Create, FileChangeCreated, true},
		{"modified", "/home/me/.config/stacks/config.toml", fsnotify.Write, FileChangeModified, true},
		{"deleted", "/home/me/.config/stacks/config.toml", fsnotify.Remove, FileChangeDeleted, true},
		{"renamed (treated as deleted)", "/home/me/.config/stacks/config.toml", fsnotify.Rename, FileChangeDeleted, true},
		{"unclean path", "/home/me/.config/stacks/./config.toml", fsnotify.Write, FileChangeModified, true},
		{"chmod ignored", "/home/me/.config/stacks/config.toml", fsnotify.Chmod, "", false},
		{"editor swap file", "/home/me/.config/stacks/.config.toml.swp", fsnotify.Write, "", false},
		{"sibling file", "/home/me/.config/stacks/other.toml", fsnotify.Write, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotOK := cw.classifyChange(fsnotify.Event{Name: tt.path, Op: tt.op})
			if gotOK != tt.wantOK {
				t.Errorf("ok = %v, want %v", gotOK, tt.wantOK)
			}
			if gotType != tt.wantType {
				t.Errorf("Type = %q, want %q", gotType, tt.wantType)
			}
		})
	}
}

// mockSubscriber implements ConfigWatcherSubscriber for testing
type mockSubscriber struct {
	changes chan ConfigChange
}

func newMockSubscriber() *mockSubscriber {
	return &mockSubscriber{changes: make(chan ConfigChange, 10)}
}

func (m *mockSubscriber) OnConfigChange(change ConfigChange) {
	m.changes <- change
}

func (m *mockSubscriber) next(t *testing.T) ConfigChange {
	t.Helper()
	select {
	case change := <-m.changes:
		return change
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for config change")
		return ConfigChange{}
	}
}

func TestConfigWatcher_Subscribe(t *testing.T) {
	cw := &ConfigWatcher{}

	cw.Subscribe(newMockSubscriber())
	cw.Subscribe(newMockSubscriber())

	if len(cw.subscribers) != 2 {
		t.Errorf("Expected 2 subscribers, got %d", len(cw.subscribers))
	}
}

type watcherEnv struct {
	watcher    *ConfigWatcher
	store      *store.FileConfigStore
	controller *controller.Controller
	sub        *mockSubscriber
}

func setupWatcher(t *testing.T) *watcherEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	st := store.NewConfigStoreAt(path)
	if err := st.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	ctrl, err := controller.New(layout.NewRenderer(policy.Default()), controller.DefaultLimits(), 16)
	if err != nil {
		t.Fatalf("Failed to create controller: %v", err)
	}

	cw, err := NewConfigWatcher(st, ctrl, zap.NewNop())
	if err != nil {
		t.Fatalf("NewConfigWatcher failed: %v", err)
	}
	sub := newMockSubscriber()
	cw.Subscribe(sub)

	if err := cw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { cw.Stop() })

	return &watcherEnv{watcher: cw, store: st, controller: ctrl, sub: sub}
}

func TestConfigWatcher_AppliesNewPolicy(t *testing.T) {
	env := setupWatcher(t)

	layouts := make(chan *model.Layout, 10)
	env.controller.Subscribe(func(l *model.Layout) { layouts <- l })

	cfg := model.DefaultConfig()
	cfg.BaseCellSize = 40
	if err := env.store.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	change := env.sub.next(t)
	if change.Error != "" {
		t.Fatalf("Unexpected error: %s", change.Error)
	}
	if change.BaseCellSize != 40 {
		t.Errorf("BaseCellSize = %v, want 40", change.BaseCellSize)
	}

	select {
	case l := <-layouts:
		if l.Number != 16 {
			t.Errorf("Re-rendered number = %d, want 16", l.Number)
		}
		// 16 has a 4-column grid, which uses the full base size
		if got := l.Blocks[2].Grid.CellSize; got != 40 {
			t.Errorf("CellSize = %v, want 40", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Controller did not re-render")
	}
}

func TestConfigWatcher_InvalidConfigKeepsPolicy(t *testing.T) {
	env := setupWatcher(t)

	data := []byte("stacks_schema = \"config/1\"\nbase_cell_size = -5.0\n")
	if err := os.WriteFile(env.store.Path(), data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	change := env.sub.next(t)
	if change.Error == "" {
		t.Fatal("Expected an error for a negative base cell size")
	}
	if got := env.controller.Renderer().Policy().BaseCellSize; got != model.DefaultBaseCellSize {
		t.Errorf("BaseCellSize = %v, want unchanged %v", got, model.DefaultBaseCellSize)
	}
}

func TestConfigWatcher_StoppedPreventsRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	ctrl, _ := controller.New(layout.NewRenderer(policy.Default()), controller.DefaultLimits(), 16)

	cw, err := NewConfigWatcher(store.NewConfigStoreAt(path), ctrl, zap.NewNop())
	if err != nil {
		t.Fatalf("NewConfigWatcher failed: %v", err)
	}

	if err := cw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := cw.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := cw.Start(); err == nil {
		t.Error("Expected error restarting a stopped watcher")
	}
	if err := cw.Stop(); err != nil {
		t.Errorf("Second Stop should be a no-op, got %v", err)
	}
}
