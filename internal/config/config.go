// ABOUTME: Configuration management for postboard with YAML config loading.
// ABOUTME: Handles seed directory, default view settings, log level, and ~ expansion.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/postboard/internal/posts"
)

var (
	ErrInvalidSort     = errors.New("invalid sort mode")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config stores postboard configuration loaded from ~/.config/postboard/config.yaml.
type Config struct {
	Seed SeedConfig `yaml:"seed"`
	View ViewConfig `yaml:"view"`
	Log  LogConfig  `yaml:"log"`
}

// SeedConfig points at the directory of markdown posts loaded at startup.
type SeedConfig struct {
	Dir string `yaml:"dir"`
}

// ViewConfig holds presentation defaults.
type ViewConfig struct {
	Sort  string `yaml:"sort"`            // likes, date, or none
	Color *bool  `yaml:"color,omitempty"` // nil means enabled
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := ParseSortMode(c.View.Sort); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// SortMode returns the configured default sort mode, defaulting to date.
func (c *Config) SortMode() posts.SortMode {
	mode, err := ParseSortMode(c.View.Sort)
	if err != nil {
		return posts.SortDate
	}
	return mode
}

// ApplySort sets the configured default sort mode on store.
func (c *Config) ApplySort(store *posts.Store) {
	store.SetSortMode(c.SortMode())
}

// ColorEnabled reports whether colored output is on.
func (c *Config) ColorEnabled() bool {
	return c.View.Color == nil || *c.View.Color
}

// LogLevel returns the configured log level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	level, err := ParseLogLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// GetSeedDir returns the seed directory, defaulting to $XDG_DATA_HOME/postboard/posts.
func (c *Config) GetSeedDir() (string, error) {
	if c.Seed.Dir != "" {
		return ExpandPath(c.Seed.Dir)
	}
	return DefaultSeedDir()
}

// DefaultSeedDir returns the default seed directory.
func DefaultSeedDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "postboard", "posts"), nil
}

// ParseSortMode maps a config or flag value to a sort mode. Empty means date.
func ParseSortMode(s string) (posts.SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "date":
		return posts.SortDate, nil
	case "likes":
		return posts.SortLikes, nil
	case "none":
		return posts.SortNone, nil
	default:
		return "", fmt.Errorf("%w: %q (want likes, date, or none)", ErrInvalidSort, s)
	}
}

// ParseLogLevel maps a config or flag value to a slog level. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "postboard", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads and validates config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	cfg, err := LoadUnvalidated()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		path, _ := GetConfigPath()
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadUnvalidated reads config from disk without checking enumerated
// settings, so a broken file can still be inspected and repaired.
func LoadUnvalidated() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from XDG config dir
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
