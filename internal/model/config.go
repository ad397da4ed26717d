package model

// Config defaults.
const (
	DefaultBaseCellSize = 26.0
	DefaultNumber       = 16
	DefaultMinNumber    = 2
	DefaultMaxNumber    = 200
	DefaultServePort    = 3000
	DefaultOpenBrowser  = true
	HardMinNumber       = 2
)

// Config represents the user's Stacks configuration.
// Stored at ~/.config/stacks/config.toml
// Schema changes require a version bump—see internal/version/version.go.
type Config struct {
	StacksSchema  string      `toml:"stacks_schema"`
	BaseCellSize  float64     `toml:"base_cell_size,omitempty"`
	DefaultNumber int         `toml:"default_number,omitempty"`
	MinNumber     int         `toml:"min_number,omitempty"`
	MaxNumber     int         `toml:"max_number"` // 0 removes the ceiling
	Serve         ServeConfig `toml:"serve"`
}

// ServeConfig holds settings for `stacks serve`.
type ServeConfig struct {
	Port        int   `toml:"port,omitempty"`
	OpenBrowser *bool `toml:"open_browser,omitempty"`
}

// DefaultConfig returns a config populated with defaults.
func DefaultConfig() *Config {
	open := DefaultOpenBrowser
	return &Config{
		BaseCellSize:  DefaultBaseCellSize,
		DefaultNumber: DefaultNumber,
		MinNumber:     DefaultMinNumber,
		MaxNumber:     DefaultMaxNumber,
		Serve: ServeConfig{
			Port:        DefaultServePort,
			OpenBrowser: &open,
		},
	}
}

// ApplyDefaults fills zero-valued optional fields. MaxNumber is left alone
// since zero is meaningful there.
func (c *Config) ApplyDefaults() {
	if c.BaseCellSize == 0 {
		c.BaseCellSize = DefaultBaseCellSize
	}
	if c.DefaultNumber == 0 {
		c.DefaultNumber = DefaultNumber
	}
	if c.MinNumber == 0 {
		c.MinNumber = DefaultMinNumber
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultServePort
	}
	if c.Serve.OpenBrowser == nil {
		open := DefaultOpenBrowser
		c.Serve.OpenBrowser = &open
	}
}

// ShouldOpenBrowser reports whether serve should launch a browser.
func (c *Config) ShouldOpenBrowser() bool {
	return c.Serve.OpenBrowser == nil || *c.Serve.OpenBrowser
}
