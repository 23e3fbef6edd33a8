// Package storage holds configuration for the blob store that keeps working
// copies of opened documents.
package storage

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// Config contains blob storage configuration.
type Config struct {
	// BasePath is the root directory for filesystem storage.
	// Default: ".data/documents"
	BasePath string `toml:"base_path"`
	// MaxDocumentSize is a human readable size ("200MB") bounding the
	// documents accepted for a working copy.
	MaxDocumentSize    string `toml:"max_document_size"`
	maxDocumentSizeVal int64
}

// Env maps environment variable names for storage configuration.
type Env struct {
	BasePath        string
	MaxDocumentSize string
}

// MaxDocumentSizeBytes returns the parsed document size limit.
// It is zero until Finalize succeeds.
func (c *Config) MaxDocumentSizeBytes() int64 {
	return c.maxDocumentSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	if size, err := units.FromHumanSize(overlay.MaxDocumentSize); err == nil {
		c.MaxDocumentSize = overlay.MaxDocumentSize
		c.maxDocumentSizeVal = size
	}
}

func (c *Config) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = ".data/documents"
	}
	if c.MaxDocumentSize == "" {
		c.MaxDocumentSize = "200MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BasePath != "" {
		if v := os.Getenv(env.BasePath); v != "" {
			c.BasePath = v
		}
	}
	if env.MaxDocumentSize != "" {
		if v := os.Getenv(env.MaxDocumentSize); v != "" {
			c.MaxDocumentSize = v
		}
	}
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}

	size, err := units.FromHumanSize(c.MaxDocumentSize)
	if err != nil {
		return fmt.Errorf("invalid max_document_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_document_size must be positive")
	}
	c.maxDocumentSizeVal = size

	return nil
}
