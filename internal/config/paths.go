package config

import (
	"os"
	"path/filepath"
)

const (
	ConfigDir      = ".config/stacks"
	ConfigFileName = "config.toml"
	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "STACKS_CONFIG"
)

// ConfigPath returns the path to the config file, honouring STACKS_CONFIG.
// Returns "" when no home directory can be determined.
func ConfigPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDir, ConfigFileName)
}

// ConfigDirPath returns the directory holding the config file.
func ConfigDirPath() string {
	p := ConfigPath()
	if p == "" {
		return ""
	}
	return filepath.Dir(p)
}
