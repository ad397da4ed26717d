package store

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/amterp/stacks/internal/config"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/version"
)

// FileConfigStore implements ConfigStore using the filesystem.
type FileConfigStore struct {
	path string
}

// NewConfigStore creates a store for the default config location.
func NewConfigStore() *FileConfigStore {
	return &FileConfigStore{path: config.ConfigPath()}
}

// NewConfigStoreAt creates a store for an explicit config file path.
func NewConfigStoreAt(path string) *FileConfigStore {
	return &FileConfigStore{path: path}
}

// Path returns the config file path ("" if unknown).
func (s *FileConfigStore) Path() string {
	return s.path
}

// Exists reports whether the config file is present.
func (s *FileConfigStore) Exists() bool {
	if s.path == "" {
		return false
	}
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the config from disk.
// Returns the default config if the file doesn't exist.
func (s *FileConfigStore) Load() (*model.Config, error) {
	if s.path == "" {
		return model.DefaultConfig(), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := model.Config{MaxNumber: model.DefaultMaxNumber}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Strict version validation (only if file exists)
	if cfg.StacksSchema == "" {
		return nil, version.MissingConfigSchema(s.path)
	}
	if cfg.StacksSchema != version.CurrentConfigSchema() {
		return nil, version.InvalidConfigSchema(s.path, cfg.StacksSchema)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Save writes the config to disk.
func (s *FileConfigStore) Save(cfg *model.Config) error {
	// Stamp current schema version
	cfg.StacksSchema = version.CurrentConfigSchema()

	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func (s *FileConfigStore) EnsureExists() error {
	if s.path == "" {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return s.Save(model.DefaultConfig())
	}
	return nil
}
