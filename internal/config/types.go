// Package config provides configuration loading and management for walkthrough.
//
// Configuration is loaded using Viper, supporting YAML config files and environment
// variable overrides. The defaults work out of the box: the built-in scenarios are
// served, the pipeline and security views start hidden, and logging is quiet.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [ScenariosConfig] selects where scenario fixtures come from
//   - [DisplayConfig] holds the initial visibility toggles and render width
//   - [LogConfig] controls the slog handler
//
// Configuration priority (highest to lowest):
//  1. Environment variables (WALKTHROUGH_ prefix, also read from ./.env)
//  2. Config file specified by WALKTHROUGH_CONFIG_PATH
//  3. User config directory (platform-standard):
//     - Linux: ~/.config/walkthrough/config.yaml
//     - macOS: ~/Library/Application Support/walkthrough/config.yaml
//     - Windows: %APPDATA%\walkthrough\config.yaml
//  4. ./walkthrough.yaml
//  5. [DefaultConfig] defaults
package config

import (
	"fmt"
	"strings"
)

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used throughout
// the application. Use [DefaultConfig] to get sensible defaults.
type Config struct {
	// Scenarios controls which scenario fixtures are available.
	Scenarios ScenariosConfig `mapstructure:"scenarios"`

	// Display holds the initial state of the presentation toggles.
	Display DisplayConfig `mapstructure:"display"`

	// Log configures diagnostic logging.
	Log LogConfig `mapstructure:"log"`
}

// ScenariosConfig selects where scenario fixtures are loaded from.
type ScenariosConfig struct {
	// Dir is an optional directory of scenario YAML documents. Scenarios found
	// there are added after the built-in ones.
	// Can be overridden with WALKTHROUGH_SCENARIO_DIR environment variable.
	Dir string `mapstructure:"dir"`

	// Default is the scenario id used when a command is given none.
	// Default: "email"
	Default string `mapstructure:"default"`

	// IncludeBuiltin controls whether the embedded scenarios are served.
	// Default: true
	IncludeBuiltin bool `mapstructure:"include_builtin"`
}

// DisplayConfig contains the initial visibility toggles and layout settings.
type DisplayConfig struct {
	// ShowPipeline starts sessions with the "under the hood" view open.
	// Default: false
	ShowPipeline bool `mapstructure:"show_pipeline"`

	// ShowSecurity starts sessions with the security overlay enabled.
	// Default: false
	ShowSecurity bool `mapstructure:"show_security"`

	// Width is the column width used when wrapping rendered text.
	// Default: 80
	Width int `mapstructure:"width"`
}

// LogConfig controls the slog handler built by the logging package.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "warn"
	Level string `mapstructure:"level"`

	// Format is "text" or "json".
	// Default: "text"
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a new [Config] with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scenarios: ScenariosConfig{
			Default:        "email",
			IncludeBuiltin: true,
		},
		Display: DisplayConfig{
			Width: 80,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// minWidth is the narrowest layout the renderer supports.
const minWidth = 40

// Validate checks that enumerated settings hold recognized values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	if c.Display.Width < minWidth {
		return fmt.Errorf("display width must be at least %d, got %d", minWidth, c.Display.Width)
	}

	if !c.Scenarios.IncludeBuiltin && c.Scenarios.Dir == "" {
		return fmt.Errorf("no scenario source: built-in scenarios disabled and scenarios.dir is empty")
	}

	return nil
}
