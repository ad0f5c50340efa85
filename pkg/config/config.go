package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"pastelink/pkg/errors"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWatchInterval = time.Second
	DefaultReadTimeout   = 2 * time.Second
)

// Config is the content of config.yaml.
type Config struct {
	LogLevel  string          `yaml:"log_level,omitempty"`
	Paste     PasteConfig     `yaml:"paste"`
	Watch     WatchConfig     `yaml:"watch"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	History   HistoryConfig   `yaml:"history"`
}

type PasteConfig struct {
	// RequireLinkPreview is nil when neither the file nor the environment
	// set it; it then defaults to true.
	RequireLinkPreview *bool `yaml:"require_link_preview,omitempty"`
}

type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type ClipboardConfig struct {
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// RequireLinkPreview reports whether pastes without a text/link-preview
// payload are left alone.
func (c *Config) RequireLinkPreview() bool {
	return c.Paste.RequireLinkPreview == nil || *c.Paste.RequireLinkPreview
}

func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	enabled := true
	requirePreview := true
	return &Config{
		LogLevel:  "info",
		Paste:     PasteConfig{RequireLinkPreview: &requirePreview},
		Watch:     WatchConfig{Interval: DefaultWatchInterval},
		Clipboard: ClipboardConfig{ReadTimeout: DefaultReadTimeout},
		History:   HistoryConfig{Enabled: &enabled},
	}
}

// Load reads the config file, applies environment overrides and defaults,
// and validates the result.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return loadFromPath(configPath)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "pastelink", "config.yaml"), nil
}

// DefaultHistoryPath is where the history database lives unless configured.
func DefaultHistoryPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "pastelink", "history.db"), nil
}

// Save writes cfg to the config file, creating its directory.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return saveToPath(configPath, cfg)
}

func saveToPath(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to write config file", err)
	}

	return nil
}

func loadFromPath(configPath string) (*Config, error) {
	cfg := &Config{}

	if err := loadConfigFile(configPath, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFile reads and parses the config file from the given path
func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		// No file: defaults and environment only.
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to parse config file", err)
	}

	return nil
}

// applyEnvironmentOverrides fills settings the file left unset.
func applyEnvironmentOverrides(cfg *Config) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("PASTELINK_LOG_LEVEL")
	}
	if cfg.Paste.RequireLinkPreview == nil {
		v, err := getEnvBool("PASTELINK_REQUIRE_LINK_PREVIEW")
		if err != nil {
			return err
		}
		cfg.Paste.RequireLinkPreview = v
	}
	if cfg.Watch.Interval == 0 {
		d, err := getEnvDuration("PASTELINK_WATCH_INTERVAL")
		if err != nil {
			return err
		}
		cfg.Watch.Interval = d
	}
	if cfg.History.Path == "" {
		cfg.History.Path = os.Getenv("PASTELINK_HISTORY_PATH")
	}
	return nil
}

func applyDefaults(cfg *Config) error {
	def := Default()
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.Paste.RequireLinkPreview == nil {
		cfg.Paste.RequireLinkPreview = def.Paste.RequireLinkPreview
	}
	if cfg.Watch.Interval == 0 {
		cfg.Watch.Interval = def.Watch.Interval
	}
	if cfg.Clipboard.ReadTimeout == 0 {
		cfg.Clipboard.ReadTimeout = def.Clipboard.ReadTimeout
	}
	if cfg.History.Enabled == nil {
		cfg.History.Enabled = def.History.Enabled
	}
	if cfg.History.Path == "" {
		path, err := DefaultHistoryPath()
		if err != nil {
			return errors.NewWithError(errors.ExitCodeConfig, "failed to get history path", err)
		}
		cfg.History.Path = path
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Watch.Interval < 0 {
		return errors.ConfigError(fmt.Sprintf("watch interval must be positive, got %s", cfg.Watch.Interval))
	}
	if cfg.Clipboard.ReadTimeout < 0 {
		return errors.ConfigError(fmt.Sprintf("clipboard read timeout must be positive, got %s", cfg.Clipboard.ReadTimeout))
	}
	return nil
}

func getEnvBool(key string) (*bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("%s must be true or false, got %q", key, value))
	}
	return &parsed, nil
}

func getEnvDuration(key string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.ConfigError(fmt.Sprintf("%s must be a duration such as 500ms or 2s, got %q", key, value))
	}
	return parsed, nil
}
