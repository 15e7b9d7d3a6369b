package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load consults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "DEFAULT_MODEL", "LLM_TEMPERATURE",
		"MAX_TOKENS", "USE_MOCK_LLM", "DEBUG", "LOG_LEVEL", "RATE_LIMIT_REQUESTS",
		"RATE_LIMIT_WINDOW", "MAX_CONCURRENT", "CACHE_SIZE", "CACHE_TTL", "EXCLUDE_PATTERNS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4-turbo-preview", cfg.DefaultModel)
	assert.InDelta(t, 0.3, cfg.LLMTemperature, 1e-9)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.MaxConcurrent)
	assert.Equal(t, 10000, cfg.CacheSize)
	assert.Equal(t, time.Hour, cfg.CacheExpiry())
	assert.Equal(t, time.Minute, cfg.RateWindow())
	assert.Equal(t, []string{"test_", "__pycache__", ".git", "venv"}, cfg.ExcludePatterns)
	assert.True(t, cfg.UseMock())
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("MAX_CONCURRENT", "12")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("EXCLUDE_PATTERNS", "build, dist ,")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.InDelta(t, 0.7, cfg.LLMTemperature, 1e-9)
	assert.Equal(t, 12, cfg.MaxConcurrent)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"build", "dist"}, cfg.ExcludePatterns)
	assert.False(t, cfg.UseMock())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "settings.env")
	content := "ANTHROPIC_API_KEY=ak-file\nDEFAULT_MODEL=claude-3-opus\nMAX_TOKENS=512\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Run("file values", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "ak-file", cfg.AnthropicAPIKey)
		assert.Equal(t, "claude-3-opus", cfg.DefaultModel)
		assert.Equal(t, 512, cfg.MaxTokens)
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("MAX_TOKENS", "1024")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 1024, cfg.MaxTokens)
	})
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_TEMPERATURE", "3.5")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero tokens", func(c *Config) { c.MaxTokens = 0 }, false},
		{"negative temperature", func(c *Config) { c.LLMTemperature = -0.1 }, false},
		{"unknown level", func(c *Config) { c.LogLevel = "trace" }, false},
		{"no model", func(c *Config) { c.DefaultModel = "" }, false},
		{"zero concurrency", func(c *Config) { c.MaxConcurrent = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestUseMock(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.UseMock())

	cfg.OpenAIAPIKey = "sk"
	assert.False(t, cfg.UseMock())

	cfg.UseMockLLM = true
	assert.True(t, cfg.UseMock())
}
