package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/v-bommidi/ai-doc-generator/config"
)

func TestNewGenerator(t *testing.T) {
	t.Run("mock without keys", func(t *testing.T) {
		cfg := config.Default()
		cfg.CacheSize = 0

		gen, err := NewGenerator(cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &MockGenerator{}, gen)
	})

	t.Run("mock is cached", func(t *testing.T) {
		gen, err := NewGenerator(config.Default(), nil)
		require.NoError(t, err)

		cached, ok := gen.(*CachedGenerator)
		require.True(t, ok)
		defer cached.Close()
		assert.IsType(t, &MockGenerator{}, cached.Generator)
	})

	t.Run("llm with key", func(t *testing.T) {
		cfg := config.Default()
		cfg.OpenAIAPIKey = "sk-test"
		cfg.CacheSize = 0

		gen, err := NewGenerator(cfg, nil)
		require.NoError(t, err)
		require.IsType(t, &LLMGenerator{}, gen)
		assert.Equal(t, []string{"gpt-4-turbo-preview", "gpt-4"}, gen.Models())
	})

	t.Run("mock forced", func(t *testing.T) {
		cfg := config.Default()
		cfg.OpenAIAPIKey = "sk-test"
		cfg.UseMockLLM = true
		cfg.CacheSize = 0

		gen, err := NewGenerator(cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &MockGenerator{}, gen)
	})
}

func TestLanguages(t *testing.T) {
	assert.Len(t, Languages(), 8)
	assert.True(t, Spanish.Valid())
	assert.False(t, LanguageCode("EN").Valid())
}
