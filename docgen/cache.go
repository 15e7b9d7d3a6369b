package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maypok86/otter"
	"github.com/v-bommidi/ai-doc-generator/logging"
	"github.com/v-bommidi/ai-doc-generator/types"
)

// CachedGenerator memoizes Generate by model and element id. Element ids
// hash the source, so an edited element misses the cache.
type CachedGenerator struct {
	Generator
	cache  otter.Cache[string, *Documentation]
	logger *slog.Logger
}

// NewCachedGenerator wraps gen with a cache of at most size entries, each
// living for ttl.
func NewCachedGenerator(gen Generator, size int, ttl time.Duration, logger *slog.Logger) (*CachedGenerator, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	cache, err := otter.MustBuilder[string, *Documentation](size).
		CollectStats().
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build cache: %w", err)
	}

	return &CachedGenerator{
		Generator: gen,
		cache:     cache,
		logger:    logger,
	}, nil
}

func cacheKey(model, elementID string) string {
	return model + ":" + elementID
}

// Generate returns a cached copy when one exists, else delegates and
// stores the result. Failures are not cached. An empty model shares
// entries with the default model it resolves to.
func (c *CachedGenerator) Generate(ctx context.Context, el types.Element, model, extra string) (*Documentation, error) {
	if model == "" {
		model = c.DefaultModel()
	}

	key := cacheKey(model, el.ID)
	if doc, ok := c.cache.Get(key); ok {
		c.logger.Debug("documentation cache hit", slog.String("key", key))
		return doc.Clone(), nil
	}

	doc, err := c.Generator.Generate(ctx, el, model, extra)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, doc.Clone())
	return doc, nil
}

// Hits and Misses report cache statistics.
func (c *CachedGenerator) Hits() int64   { return c.cache.Stats().Hits() }
func (c *CachedGenerator) Misses() int64 { return c.cache.Stats().Misses() }

// Close stops the cache's background work.
func (c *CachedGenerator) Close() {
	c.cache.Close()
}
