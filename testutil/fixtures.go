package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/stacks/internal/config"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/version"
)

// TestConfig returns a config with sensible test defaults.
func TestConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.StacksSchema = version.CurrentConfigSchema()
	return cfg
}

// TempConfigPath returns a config file path inside a fresh temp directory.
// The file itself is not created.
func TempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), config.ConfigFileName)
}

// WriteConfig writes raw TOML to a temp config file and returns its path.
func WriteConfig(t *testing.T, contents string) string {
	t.Helper()

	path := TempConfigPath(t)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// UseConfigPath points STACKS_CONFIG at path for the duration of the test.
func UseConfigPath(t *testing.T, path string) {
	t.Helper()
	t.Setenv(config.ConfigPathEnv, path)
}
