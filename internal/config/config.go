package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. REPOPUSH_BACKEND_BASE_URL
	EnvPrefix = "REPOPUSH"

	DefaultBaseURL   = "http://localhost:8080"
	DefaultTimeout   = "30s"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultLogFile   = "repopush.log"
)

// Config represents the application configuration
type Config struct {
	Version int           `toml:"version" mapstructure:"version"`
	Backend BackendConfig `toml:"backend" mapstructure:"backend"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`
	UI      UISettings    `toml:"ui" mapstructure:"ui"`
}

// BackendConfig locates the repository backend
type BackendConfig struct {
	BaseURL string `toml:"base_url" mapstructure:"base_url"`
	Timeout string `toml:"timeout" mapstructure:"timeout"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level  string `toml:"level" mapstructure:"level"`
	Format string `toml:"format" mapstructure:"format"`
	File   string `toml:"file" mapstructure:"file"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowPaths bool `toml:"show_paths" mapstructure:"show_paths"`
}

// RequestTimeout parses Backend.Timeout. Zero disables the timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Backend.Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid backend timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid backend timeout %q: must not be negative", raw)
	}
	return d, nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	filePath string
}

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service bound to path
func NewConfigServiceAt(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/repopush/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "repopush", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the bound file. A missing file yields the defaults with
// environment overrides applied.
func (cs *configService) Load() (*Config, error) {
	return load(cs.filePath, true)
}

// Save writes config to the bound file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return load(path, false)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Backend: BackendConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   DefaultLogFile,
		},
	}
}

func defaultValues() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"version":          d.Version,
		"backend.base_url": d.Backend.BaseURL,
		"backend.timeout":  d.Backend.Timeout,
		"log.level":        d.Log.Level,
		"log.format":       d.Log.Format,
		"log.file":         d.Log.File,
		"ui.show_paths":    d.UI.ShowPaths,
	}
}

func load(path string, allowMissing bool) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if !allowMissing {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := cfg.RequestTimeout(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
