package docgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/v-bommidi/ai-doc-generator/logging"
	"github.com/v-bommidi/ai-doc-generator/types"
)

const (
	defaultMaxTries = 3

	// Provider model names and the identifiers they are served under.
	modelGPT4Turbo   = "gpt-4-turbo-preview"
	modelGPT4        = "gpt-4"
	modelClaude3Opus = "claude-3-opus"

	claude3OpusID = "claude-3-opus-20240229"
)

// ErrInvalidOutput is returned when a model response is not usable
// documentation.
var ErrInvalidOutput = errors.New("invalid documentation output")

// LLMConfig holds provider credentials and sampling settings.
type LLMConfig struct {
	OpenAIAPIKey    string
	AnthropicAPIKey string
	DefaultModel    string
	Temperature     float64
	MaxTokens       int
}

// LLMGenerator generates documentation through langchaingo models.
// It is safe for concurrent use once constructed.
type LLMGenerator struct {
	models       map[string]llms.Model
	order        []string
	defaultModel string
	temperature  float64
	maxTokens    int

	logger     *slog.Logger
	newBackOff func() backoff.BackOff
	maxTries   uint
	now        func() time.Time
}

// LLMOption configures an LLMGenerator.
type LLMOption func(*LLMGenerator)

// WithModel registers a model under name, replacing any provider model of
// the same name.
func WithModel(name string, model llms.Model) LLMOption {
	return func(g *LLMGenerator) {
		if _, ok := g.models[name]; !ok {
			g.order = append(g.order, name)
		}
		g.models[name] = model
	}
}

// WithLogger sets the logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) LLMOption {
	return func(g *LLMGenerator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithBackOff replaces the retry schedule between attempts.
func WithBackOff(newBackOff func() backoff.BackOff) LLMOption {
	return func(g *LLMGenerator) {
		if newBackOff != nil {
			g.newBackOff = newBackOff
		}
	}
}

// WithMaxTries limits the attempts per request. Defaults to 3.
func WithMaxTries(n uint) LLMOption {
	return func(g *LLMGenerator) {
		if n > 0 {
			g.maxTries = n
		}
	}
}

// defaultBackOff waits exponentially between 2s and 10s.
func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 10 * time.Second
	b.Multiplier = 2
	return b
}

// NewLLMGenerator creates a generator with one model per configured
// provider key plus any models passed through WithModel.
func NewLLMGenerator(cfg LLMConfig, opts ...LLMOption) (*LLMGenerator, error) {
	g := &LLMGenerator{
		models:       make(map[string]llms.Model),
		defaultModel: cfg.DefaultModel,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
		logger:       logging.Discard(),
		newBackOff:   defaultBackOff,
		maxTries:     defaultMaxTries,
		now:          time.Now,
	}

	var providers []LLMOption
	if cfg.OpenAIAPIKey != "" {
		for _, name := range []string{modelGPT4Turbo, modelGPT4} {
			m, err := openai.New(openai.WithToken(cfg.OpenAIAPIKey), openai.WithModel(name))
			if err != nil {
				return nil, fmt.Errorf("initialize openai model %s: %w", name, err)
			}
			providers = append(providers, WithModel(name, m))
		}
	}
	if cfg.AnthropicAPIKey != "" {
		m, err := anthropic.New(anthropic.WithToken(cfg.AnthropicAPIKey), anthropic.WithModel(claude3OpusID))
		if err != nil {
			return nil, fmt.Errorf("initialize anthropic model: %w", err)
		}
		providers = append(providers, WithModel(modelClaude3Opus, m))
	}

	for _, opt := range append(providers, opts...) {
		opt(g)
	}

	if len(g.models) == 0 {
		return nil, ErrNoModels
	}
	if g.defaultModel == "" {
		g.defaultModel = g.order[0]
	}

	g.logger.Info("llm generator initialized",
		slog.Any("available_models", g.order),
		slog.String("default", g.defaultModel))
	return g, nil
}

// Models lists the registered model names in registration order.
func (g *LLMGenerator) Models() []string {
	return append([]string(nil), g.order...)
}

// DefaultModel names the model used when Generate gets an empty model.
func (g *LLMGenerator) DefaultModel() string {
	return g.defaultModel
}

// Generate documents el with the named model, retrying failed attempts.
// An unknown model fails immediately.
func (g *LLMGenerator) Generate(ctx context.Context, el types.Element, model, extra string) (*Documentation, error) {
	if model == "" {
		model = g.defaultModel
	}
	llm, ok := g.models[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}

	messages, err := documentationMessages(el, extra)
	if err != nil {
		return nil, err
	}

	g.logger.Info("generating documentation", slog.String("element_id", el.ID), slog.String("model", model))

	attempt := func() (*Documentation, error) {
		resp, err := llm.GenerateContent(ctx, messages,
			llms.WithTemperature(g.temperature),
			llms.WithMaxTokens(g.maxTokens))
		if err != nil {
			return nil, err
		}
		if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
			return nil, ErrEmptyResponse
		}
		choice := resp.Choices[0]

		doc, err := parseDocumentation(choice.Content)
		if err != nil {
			return nil, err
		}
		doc.ElementID = el.ID
		doc.Model = model
		doc.Confidence = Confidence(doc)
		doc.GeneratedAt = g.now().UTC()
		doc.TokensUsed = tokensUsed(choice, messageText(messages))
		doc.normalize()

		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
		}
		return doc, nil
	}

	doc, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(g.newBackOff()),
		backoff.WithMaxTries(g.maxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			g.logger.Warn("generation attempt failed",
				slog.String("element_id", el.ID),
				slog.Duration("retry_in", wait),
				slog.Any("error", err))
		}))
	if err != nil {
		g.logger.Error("generation failed", slog.String("element_id", el.ID), slog.Any("error", err))
		return nil, fmt.Errorf("generate documentation for %s: %w", el.ID, err)
	}

	g.logger.Info("documentation generated", slog.String("element_id", el.ID))
	return doc, nil
}

// Translate rewrites text into the target language. An empty model
// selects the first registered one.
func (g *LLMGenerator) Translate(ctx context.Context, text string, from, to LanguageCode, model string) (string, error) {
	if !to.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, to)
	}
	if model == "" {
		model = g.order[0]
	}
	llm, ok := g.models[model]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}

	messages, err := translationMessages(text, from, to)
	if err != nil {
		return "", err
	}

	g.logger.Info("translating", slog.String("source", string(from)), slog.String("target", string(to)))

	resp, err := llm.GenerateContent(ctx, messages,
		llms.WithTemperature(g.temperature),
		llms.WithMaxTokens(g.maxTokens))
	if err != nil {
		g.logger.Error("translation failed", slog.Any("error", err))
		return "", fmt.Errorf("translate to %s: %w", to, err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", fmt.Errorf("translate to %s: %w", to, ErrEmptyResponse)
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// parseDocumentation decodes the JSON object in a model response. Text
// around the outermost braces, such as a markdown fence, is ignored.
func parseDocumentation(content string) (*Documentation, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrInvalidOutput)
	}

	var doc Documentation
	if err := json.Unmarshal([]byte(content[start:end+1]), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}
	return &doc, nil
}

// Confidence scores documentation completeness in [0, 1], rounded to two
// decimals.
func Confidence(doc *Documentation) float64 {
	score := 0.0
	if len(doc.Summary) >= 20 {
		score += 0.20
	}
	if len(doc.DetailedDescription) >= 50 {
		score += 0.20
	}
	if len(doc.Parameters) > 0 {
		score += 0.15
	}
	if doc.Returns != "" {
		score += 0.15
	}
	if len(doc.Examples) > 0 {
		score += 0.15
	}
	if len(doc.Raises) > 0 {
		score += 0.10
	}
	if doc.Complexity != "" {
		score += 0.05
	}
	return math.Round(score*100) / 100
}

// tokensUsed prefers the provider's usage report over an estimate.
func tokensUsed(choice *llms.ContentChoice, prompt string) int {
	info := choice.GenerationInfo
	if n, ok := info["TotalTokens"].(int); ok && n > 0 {
		return n
	}
	in, _ := info["InputTokens"].(int)
	out, _ := info["OutputTokens"].(int)
	if in+out > 0 {
		return in + out
	}
	return EstimateTokens(prompt + choice.Content)
}
