// Package config handles the XDG configuration directory, its files and settings.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// AppName is the application directory name.
	AppName = "mytasks"

	// SettingsFile holds user settings.
	SettingsFile = "config.toml"

	// StoreFile is the local key/value database holding the session token.
	StoreFile = "store.db"

	// DefaultBaseURL is the backend used when none is configured.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultPageSize is the number of tasks per page.
	DefaultPageSize = 6

	// DefaultTimeout bounds each backend call.
	DefaultTimeout = 5 * time.Second

	// EnvBaseURL overrides the configured backend URL.
	EnvBaseURL = "MYTASKS_BASE_URL"
)

// Settings is the content of config.toml.
type Settings struct {
	BaseURL  string `toml:"base_url"`
	PageSize int    `toml:"page_size"`
	Timeout  string `toml:"timeout"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings is loaded from config.toml; zero fields mean defaults.
	Settings Settings
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/mytasks or $HOME/.config/mytasks.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultSettings returns the settings written on first use.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:  DefaultBaseURL,
		PageSize: DefaultPageSize,
		Timeout:  DefaultTimeout.String(),
	}
}

// Load reads config.toml, creating it with defaults when missing,
// and validates the result.
func (c *Config) Load() error {
	path := c.SettingsPath()
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := c.EnsureDir(); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := writeSettings(path, settings); err != nil {
			return fmt.Errorf("failed to write %s: %w", SettingsFile, err)
		}
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	default:
		if err := toml.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("invalid %s: %w", SettingsFile, err)
		}
	}

	c.Settings = settings
	if _, err := c.timeout(); err != nil {
		return err
	}
	if _, err := url.ParseRequestURI(c.BaseURL()); err != nil {
		return fmt.Errorf("invalid base_url: %s", c.BaseURL())
	}
	return nil
}

func writeSettings(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// BaseURL returns the backend URL without a trailing slash.
// MYTASKS_BASE_URL takes precedence over config.toml.
func (c *Config) BaseURL() string {
	base := os.Getenv(EnvBaseURL)
	if base == "" {
		base = c.Settings.BaseURL
	}
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

// PageSize returns the configured page size or the default.
func (c *Config) PageSize() int {
	if c.Settings.PageSize > 0 {
		return c.Settings.PageSize
	}
	return DefaultPageSize
}

// Timeout returns the per-call backend timeout.
func (c *Config) Timeout() time.Duration {
	d, err := c.timeout()
	if err != nil {
		return DefaultTimeout
	}
	return d
}

func (c *Config) timeout() (time.Duration, error) {
	if c.Settings.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Settings.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeout: %s", c.Settings.Timeout)
	}
	return d, nil
}

// SettingsPath returns the path to config.toml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// StorePath returns the path to the local key/value database.
func (c *Config) StorePath() string {
	return filepath.Join(c.Dir, StoreFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
