// Package config provides configuration management for the MTB file
// validator. This file contains the lightweight configuration for
// standalone CLI operation, with no database or Redis dependency.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// LiteConfig is a simplified configuration for standalone operation.
// It requires no external database and validates directly against
// in-memory catalogs.
type LiteConfig struct {
	// Data storage
	DataDir string // Base directory for cached catalog downloads

	// Catalog sources
	ICD10GMPath string
	ICDO3Path   string
	ATCPath     string

	// Cache settings
	CacheMaxItems int           // Maximum items in memory cache
	CacheTTL      time.Duration // Default cache TTL

	// Transport settings
	Transport string // Transport type: stdio, http
	HTTPPort  int    // HTTP port (if transport is http)

	// Logging
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: json, text
}

// DefaultLiteConfig returns a configuration with sensible defaults.
func DefaultLiteConfig() *LiteConfig {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".mtb-validator")

	return &LiteConfig{
		DataDir:       dataDir,
		ICD10GMPath:   filepath.Join(dataDir, "catalogs", "icd10gm.yaml"),
		ICDO3Path:     filepath.Join(dataDir, "catalogs", "icdo3.yaml"),
		ATCPath:       filepath.Join(dataDir, "catalogs", "atc.csv"),
		CacheMaxItems: 1000,
		CacheTTL:      24 * time.Hour,
		Transport:     "stdio",
		HTTPPort:      8080,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// LoadLiteConfig loads configuration from environment variables.
// Falls back to defaults if not set.
func LoadLiteConfig() *LiteConfig {
	cfg := DefaultLiteConfig()

	if v := os.Getenv("MTB_VALIDATOR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	if v := os.Getenv("MTB_VALIDATOR_ICD10GM_PATH"); v != "" {
		cfg.ICD10GMPath = v
	}
	if v := os.Getenv("MTB_VALIDATOR_ICDO3_PATH"); v != "" {
		cfg.ICDO3Path = v
	}
	if v := os.Getenv("MTB_VALIDATOR_ATC_PATH"); v != "" {
		cfg.ATCPath = v
	}

	if v := os.Getenv("MTB_VALIDATOR_CACHE_MAX_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheMaxItems = n
		}
	}
	if v := os.Getenv("MTB_VALIDATOR_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}

	if v := os.Getenv("MTB_VALIDATOR_TRANSPORT"); v != "" {
		cfg.Transport = v
	}
	if v := os.Getenv("MTB_VALIDATOR_HTTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	if v := os.Getenv("MTB_VALIDATOR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MTB_VALIDATOR_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg
}

// EnsureDataDir creates the data directory (and its catalogs
// subdirectory) if it doesn't exist.
func (c *LiteConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(c.DataDir, "catalogs"), 0755)
}
