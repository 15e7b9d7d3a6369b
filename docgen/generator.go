package docgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/v-bommidi/ai-doc-generator/config"
	"github.com/v-bommidi/ai-doc-generator/logging"
	"github.com/v-bommidi/ai-doc-generator/types"
)

var (
	// ErrUnknownModel is returned for a model name the generator does not serve.
	ErrUnknownModel = errors.New("model not available")

	// ErrNoModels is returned when no provider could be configured.
	ErrNoModels = errors.New("no language models configured")

	// ErrUnsupportedLanguage is returned for an unknown language code.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrEmptyResponse is returned when a model produced no content.
	ErrEmptyResponse = errors.New("empty model response")
)

// Generator produces documentation for extracted elements.
type Generator interface {
	// Generate documents one element. An empty model selects the default;
	// extra is free-form context appended to the request.
	Generate(ctx context.Context, el types.Element, model, extra string) (*Documentation, error)

	// Translate rewrites documentation text into another language.
	Translate(ctx context.Context, text string, from, to LanguageCode, model string) (string, error)

	// Models lists the model names Generate accepts.
	Models() []string

	// DefaultModel names the model an empty model argument selects.
	DefaultModel() string
}

// EstimateTokens is a rough token count: four characters per token.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// NewGenerator picks the mock or the LLM-backed generator from cfg and
// wraps it in a cache when cfg.CacheSize is positive.
func NewGenerator(cfg *config.Config, logger *slog.Logger) (Generator, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	var gen Generator
	if cfg.UseMock() {
		logger.Info("using mock generator")
		gen = NewMockGenerator()
	} else {
		llm, err := NewLLMGenerator(LLMConfig{
			OpenAIAPIKey:    cfg.OpenAIAPIKey,
			AnthropicAPIKey: cfg.AnthropicAPIKey,
			DefaultModel:    cfg.DefaultModel,
			Temperature:     cfg.LLMTemperature,
			MaxTokens:       cfg.MaxTokens,
		}, WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create llm generator: %w", err)
		}
		gen = llm
	}

	if cfg.CacheSize <= 0 {
		return gen, nil
	}
	cached, err := NewCachedGenerator(gen, cfg.CacheSize, cfg.CacheExpiry(), logger)
	if err != nil {
		return nil, fmt.Errorf("create documentation cache: %w", err)
	}
	return cached, nil
}
