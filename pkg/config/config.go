/*
config holds the bridge configuration. The configuration is an explicit
struct passed to the engine at start and held immutably afterwards; there
are no ambient globals.
*/
package config

import (
	"os"
	"time"

	// Packages
	yaml "gopkg.in/yaml.v3"
	bridge "github.com/mcpbridge/mcpbridge"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Config struct {
	// Model is the backend model used for chat completions
	Model string `yaml:"model" json:"model"`

	// APIKey is the model backend credential. It is passed through to the
	// backend and never interpreted by the bridge.
	APIKey string `yaml:"api_key" json:"-"`

	// ProviderCommand launches the tool-provider process, a single string
	// split on whitespace (e.g. "python wifi_diagnostics_mcp.py")
	ProviderCommand string `yaml:"provider_command" json:"provider_command"`

	// TimeoutSecs bounds each tool invocation, in seconds
	TimeoutSecs uint `yaml:"timeout" json:"timeout"`

	// MaxRounds caps the model rounds per user turn
	MaxRounds uint `yaml:"max_rounds" json:"max_rounds"`

	// SystemPrompt is prepended to every conversation when set
	SystemPrompt string `yaml:"system_prompt,omitempty" json:"system_prompt,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultModel       = "gpt-4o"
	DefaultTimeoutSecs = 30
	DefaultMaxRounds   = 8
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Default returns the configuration defaults
func Default() Config {
	return Config{
		Model:       DefaultModel,
		TimeoutSecs: DefaultTimeoutSecs,
		MaxRounds:   DefaultMaxRounds,
	}
}

// Load reads a YAML configuration file over the defaults. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, bridge.ErrBadParameter.Withf("%s: %v", path, err)
	}
	return c, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate checks required fields and ranges
func (c Config) Validate() error {
	if c.Model == "" {
		return bridge.ErrBadParameter.With("model is required")
	}
	if c.APIKey == "" {
		return bridge.ErrBadParameter.With("api key is required")
	}
	if c.TimeoutSecs == 0 {
		return bridge.ErrBadParameter.With("timeout must be positive")
	}
	if c.MaxRounds == 0 {
		return bridge.ErrBadParameter.With("max rounds must be positive")
	}
	return nil
}

// Timeout returns the per-call timeout as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}
