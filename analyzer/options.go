package analyzer

import (
	"io"
	"log/slog"
)

// DefaultMaxDepth bounds tree traversal when no limit is configured.
const DefaultMaxDepth = 10000

type extractorConfig struct {
	language Language
	logger   *slog.Logger
	maxDepth int
}

// Option configures an Extractor.
type Option func(*extractorConfig)

// WithLanguage selects the grammar. Defaults to Python.
func WithLanguage(lang Language) Option {
	return func(c *extractorConfig) {
		if lang != nil {
			c.language = lang
		}
	}
}

// WithLogger sets the logger used for extraction events.
// Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *extractorConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxDepth limits how deep a traversal may descend before the call
// fails with ErrMaxDepthExceeded. A value <= 0 disables the limit.
func WithMaxDepth(depth int) Option {
	return func(c *extractorConfig) {
		c.maxDepth = depth
	}
}

func defaultConfig() extractorConfig {
	return extractorConfig{
		language: Python{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: DefaultMaxDepth,
	}
}
