package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLiteConfig(t *testing.T) {
	cfg := DefaultLiteConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.ICD10GMPath)
	assert.NotEmpty(t, cfg.ICDO3Path)
	assert.NotEmpty(t, cfg.ATCPath)
	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "stdio", cfg.Transport)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadLiteConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg := LoadLiteConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Equal(t, "stdio", cfg.Transport)
}

func TestLoadLiteConfig_EnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)

	os.Setenv("MTB_VALIDATOR_DATA_DIR", "/tmp/test-mtb-validator")
	os.Setenv("MTB_VALIDATOR_ICD10GM_PATH", "/tmp/test-mtb-validator/icd10gm.yaml")
	os.Setenv("MTB_VALIDATOR_CACHE_MAX_ITEMS", "500")
	os.Setenv("MTB_VALIDATOR_CACHE_TTL", "12h")
	os.Setenv("MTB_VALIDATOR_TRANSPORT", "http")
	os.Setenv("MTB_VALIDATOR_HTTP_PORT", "9090")
	os.Setenv("MTB_VALIDATOR_LOG_LEVEL", "debug")

	defer clearEnvVars(t)

	cfg := LoadLiteConfig()

	assert.Equal(t, "/tmp/test-mtb-validator", cfg.DataDir)
	assert.Equal(t, "/tmp/test-mtb-validator/icd10gm.yaml", cfg.ICD10GMPath)
	assert.Equal(t, 500, cfg.CacheMaxItems)
	assert.Equal(t, 12*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLiteConfig_EnsureDataDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	cfg := &LiteConfig{DataDir: filepath.Join(tmpDir, "mtb-validator")}

	err = cfg.EnsureDataDir()
	require.NoError(t, err)

	_, err = os.Stat(cfg.DataDir)
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.DataDir, "catalogs"))
	assert.NoError(t, err)
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	vars := []string{
		"MTB_VALIDATOR_DATA_DIR",
		"MTB_VALIDATOR_ICD10GM_PATH",
		"MTB_VALIDATOR_ICDO3_PATH",
		"MTB_VALIDATOR_ATC_PATH",
		"MTB_VALIDATOR_CACHE_MAX_ITEMS",
		"MTB_VALIDATOR_CACHE_TTL",
		"MTB_VALIDATOR_TRANSPORT",
		"MTB_VALIDATOR_HTTP_PORT",
		"MTB_VALIDATOR_LOG_LEVEL",
		"MTB_VALIDATOR_LOG_FORMAT",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
