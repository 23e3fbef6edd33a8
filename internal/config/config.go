// Package config provides pdfbridge configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/pdfbridge/pkg/logging"
	"github.com/JaimeStill/pdfbridge/pkg/storage"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvPdfbridgeEnv specifies the environment name for configuration overlays.
	EnvPdfbridgeEnv = "PDFBRIDGE_ENV"
)

var loggingEnv = &logging.Env{
	Level:     "PDFBRIDGE_LOG_LEVEL",
	Format:    "PDFBRIDGE_LOG_FORMAT",
	AddSource: "PDFBRIDGE_LOG_ADD_SOURCE",
}

var storageEnv = &storage.Env{
	BasePath:        "PDFBRIDGE_STORAGE_BASE_PATH",
	MaxDocumentSize: "PDFBRIDGE_STORAGE_MAX_DOCUMENT_SIZE",
}

// Config represents the root pdfbridge configuration.
type Config struct {
	Bridge  BridgeConfig   `toml:"bridge"`
	Logging logging.Config `toml:"logging"`
	Storage storage.Config `toml:"storage"`
}

// Load reads the base configuration file from dir and applies any
// environment-specific overlay. A missing base file yields an empty
// configuration that Finalize fills with defaults.
func Load(dir string) (*Config, error) {
	cfg, err := load(dir, BaseConfigFile)
	if err != nil {
		return nil, err
	}

	if name := overlayFile(dir); name != "" {
		overlay, err := load(dir, name)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", name, err)
		}
		cfg.Merge(overlay)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	if err := c.Bridge.Finalize(); err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Bridge.Merge(&overlay.Bridge)
	c.Logging.Merge(&overlay.Logging)
	c.Storage.Merge(&overlay.Storage)
}

func load(dir, name string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && name == BaseConfigFile {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayFile(dir string) string {
	if env := os.Getenv(EnvPdfbridgeEnv); env != "" {
		name := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name
		}
	}
	return ""
}
