// Package config loads generator settings from the environment, an optional
// dotenv file, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/v-bommidi/ai-doc-generator/types"
)

// DefaultFile is read when no config file is named and it exists.
const DefaultFile = ".env"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every tunable of the generator.
type Config struct {
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`

	DefaultModel   string  `mapstructure:"default_model" validate:"required"`
	LLMTemperature float64 `mapstructure:"llm_temperature" validate:"gte=0,lte=2"`
	MaxTokens      int     `mapstructure:"max_tokens" validate:"gt=0"`
	UseMockLLM     bool    `mapstructure:"use_mock_llm"`

	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`

	RateLimitRequests int `mapstructure:"rate_limit_requests" validate:"gt=0"`
	// RateLimitWindow is in seconds.
	RateLimitWindow int `mapstructure:"rate_limit_window" validate:"gt=0"`
	MaxConcurrent   int `mapstructure:"max_concurrent" validate:"gt=0"`

	CacheSize int `mapstructure:"cache_size" validate:"gte=0"`
	// CacheTTL is in seconds.
	CacheTTL int `mapstructure:"cache_ttl" validate:"gt=0"`

	ExcludePatterns []string `mapstructure:"exclude_patterns"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultModel:      "gpt-4-turbo-preview",
		LLMTemperature:    0.3,
		MaxTokens:         2000,
		LogLevel:          "info",
		RateLimitRequests: 100,
		RateLimitWindow:   60,
		MaxConcurrent:     5,
		CacheSize:         10000,
		CacheTTL:          3600,
		ExcludePatterns:   []string{"test_", "__pycache__", ".git", "venv"},
	}
}

// UseMock reports whether documentation should come from the mock
// generator: either requested explicitly or no provider key is set.
func (c *Config) UseMock() bool {
	return c.UseMockLLM || (c.OpenAIAPIKey == "" && c.AnthropicAPIKey == "")
}

// RateWindow returns RateLimitWindow as a duration.
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateLimitWindow) * time.Second
}

// CacheExpiry returns CacheTTL as a duration.
func (c *Config) CacheExpiry() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := types.Validator().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables (OPENAI_API_KEY, LOG_LEVEL, ...)
// 2. The dotenv file at path, or DefaultFile when path is empty
// 3. Default values
//
// A missing file is only an error when path was given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			file = DefaultFile
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.ExcludePatterns = splitPatterns(cfg.ExcludePatterns)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("openai_api_key", d.OpenAIAPIKey)
	v.SetDefault("anthropic_api_key", d.AnthropicAPIKey)
	v.SetDefault("default_model", d.DefaultModel)
	v.SetDefault("llm_temperature", d.LLMTemperature)
	v.SetDefault("max_tokens", d.MaxTokens)
	v.SetDefault("use_mock_llm", d.UseMockLLM)

	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_level", d.LogLevel)

	v.SetDefault("rate_limit_requests", d.RateLimitRequests)
	v.SetDefault("rate_limit_window", d.RateLimitWindow)
	v.SetDefault("max_concurrent", d.MaxConcurrent)

	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("cache_ttl", d.CacheTTL)

	v.SetDefault("exclude_patterns", strings.Join(d.ExcludePatterns, ","))
}

// splitPatterns flattens comma separated entries and drops blanks.
func splitPatterns(in []string) []string {
	out := []string{}
	for _, entry := range in {
		for _, p := range strings.Split(entry, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
