package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// appName names the user config directory.
	appName = "walkthrough"

	// envPrefix is prepended to every environment override.
	envPrefix = "WALKTHROUGH"

	// configFileName is the file looked up in the user config directory.
	configFileName = "config.yaml"

	// localConfigFile is the fallback looked up in the working directory.
	localConfigFile = "walkthrough.yaml"
)

// Loader handles Viper-based configuration loading.
//
// Create with [NewLoader]. Each Loader owns its own Viper instance, so tests
// can load configurations without touching global state.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a [Loader] with defaults and environment bindings applied.
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short aliases for the most common overrides.
	_ = v.BindEnv("scenarios.dir", envPrefix+"_SCENARIO_DIR")
	_ = v.BindEnv("log.level", envPrefix+"_LOG_LEVEL")

	return &Loader{v: v}
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("scenarios.dir", cfg.Scenarios.Dir)
	v.SetDefault("scenarios.default", cfg.Scenarios.Default)
	v.SetDefault("scenarios.include_builtin", cfg.Scenarios.IncludeBuiltin)
	v.SetDefault("display.show_pipeline", cfg.Display.ShowPipeline)
	v.SetDefault("display.show_security", cfg.Display.ShowSecurity)
	v.SetDefault("display.width", cfg.Display.Width)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// Load reads configuration following the documented priority order.
//
// A .env file in the working directory is applied to the process environment
// first; variables already set are not overwritten. A missing config file is
// not an error: defaults and environment overrides still apply.
func (l *Loader) Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	if path := os.Getenv(envPrefix + "_CONFIG_PATH"); path != "" {
		return l.LoadFromFile(path)
	}

	if path, err := DefaultConfigPath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return l.LoadFromFile(path)
		}
	}

	if _, err := os.Stat(localConfigFile); err == nil {
		return l.LoadFromFile(localConfigFile)
	}

	return l.unmarshal()
}

// LoadFromFile reads the config file at path. The format is taken from the
// file extension (YAML, JSON and TOML are supported by Viper).
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad loads configuration and panics on error.
// Intended for program start-up where a bad configuration is fatal.
func MustLoad() *Config {
	cfg, err := NewLoader().Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// ConfigDir returns the platform-standard configuration directory for walkthrough.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// DefaultConfigPath returns the path of the user-level config file.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// EnsureConfigDir creates the user config directory if it does not exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}
