// Package config provides configuration loading for verdantd.
package config

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/verdant/internal/gemini"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StoreConfig selects and configures the entry store.
type StoreConfig struct {
	Driver string `koanf:"driver"` // "memory" or "sqlite"
	Path   string `koanf:"path"`   // sqlite database file
}

// InsightsConfig holds insight generation settings.
type InsightsConfig struct {
	DefaultMode string `koanf:"default_mode"` // "private" or "gemini"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Gemini   gemini.Config  `koanf:"gemini"`
	Insights InsightsConfig `koanf:"insights"`
	Log      LogConfig      `koanf:"log"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store path required for sqlite driver")
		}
	default:
		return fmt.Errorf("unknown store driver: %q", c.Store.Driver)
	}

	switch c.Insights.DefaultMode {
	case "private", "gemini":
	default:
		return fmt.Errorf("unknown insights mode: %q", c.Insights.DefaultMode)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Log.Level)
	}

	return nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memory"
	}

	if cfg.Insights.DefaultMode == "" {
		cfg.Insights.DefaultMode = "private"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
