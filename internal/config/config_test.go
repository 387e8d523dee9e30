package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"database_url": "postgres://localhost:5432/civicpulse",
		"api_key": "test-key",
		"concurrency": 4,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost:5432/civicpulse", cfg.DatabaseURL)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_ConcurrencyOutOfRange(t *testing.T) {
	cfg := &Config{Concurrency: 500}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Concurrency")
}

func TestValidate_MalformedDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "::not a url::"}

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/civicpulse",
		Concurrency: 10,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		DatabaseURL: "postgres://default:5432/civicpulse",
		APIKey:      "default-key",
		Concurrency: 8,
	}

	partial := Config{
		APIKey: "custom-key",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom-key", merged.APIKey)

	// Default values should fill in empty fields
	assert.Equal(t, "postgres://default:5432/civicpulse", merged.DatabaseURL)
	assert.Equal(t, 8, merged.Concurrency)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{APIKey: "test-key"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "test-key", merged.APIKey)
	assert.Equal(t, defaultConcurrency, merged.Concurrency)
}
