package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP server
	HTTPAddr string

	// Storage
	StorageType string // "memory" or "sqlite"
	DataDir     string

	// Viewer-count simulator
	ViewerSimInterval time.Duration

	// Donation archive (disabled when no addresses are set)
	ESAddresses     []string
	ArchiveInterval time.Duration

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// Get working directory for resource paths
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := &Config{
		HTTPAddr:          getEnvWithDefault("HTTP_ADDR", ":8080"),
		StorageType:       getEnvWithDefault("STORAGE_TYPE", "memory"),
		DataDir:           getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		ViewerSimInterval: getDurationWithDefault("VIEWER_SIM_INTERVAL", 4*time.Second),
		ArchiveInterval:   getDurationWithDefault("ARCHIVE_INTERVAL", 5*time.Minute),
		Environment:       getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if addrs := os.Getenv("ES_ADDRESSES"); addrs != "" {
		cfg.ESAddresses = strings.Split(addrs, ",")
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if cfg.StorageType == "sqlite" {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	if c.StorageType != "memory" && c.StorageType != "sqlite" {
		return fmt.Errorf("STORAGE_TYPE must be memory or sqlite, got %q", c.StorageType)
	}
	if c.ViewerSimInterval <= 0 {
		return fmt.Errorf("VIEWER_SIM_INTERVAL must be positive")
	}
	return nil
}

// ArchiveEnabled returns true if the donation archive should run
func (c *Config) ArchiveEnabled() bool {
	return len(c.ESAddresses) > 0
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationWithDefault parses an environment variable as a Go duration
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
