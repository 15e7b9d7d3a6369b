package docgen

import (
	"context"
	"log/slog"
	"time"

	"github.com/v-bommidi/ai-doc-generator/logging"
	"github.com/v-bommidi/ai-doc-generator/types"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultMaxConcurrent bounds in-flight requests when none is set.
const DefaultMaxConcurrent = 5

// BatchOptions controls BatchGenerate.
type BatchOptions struct {
	Model   string
	Context string

	// MaxConcurrent bounds requests in flight.
	MaxConcurrent int

	// Limiter paces request starts. Nil disables pacing.
	Limiter *rate.Limiter

	Logger *slog.Logger
}

// NewLimiter allows requests per window with bursts up to requests.
func NewLimiter(requests int, window time.Duration) *rate.Limiter {
	if requests <= 0 || window <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
}

// BatchGenerate documents elements concurrently. Elements whose generation
// fails are logged and dropped; the remaining results keep input order.
// Only cancellation of ctx fails the batch.
func BatchGenerate(ctx context.Context, gen Generator, elements []types.Element, opts BatchOptions) ([]*Documentation, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	limit := opts.MaxConcurrent
	if limit < 1 {
		limit = DefaultMaxConcurrent
	}

	slots := make([]*Documentation, len(elements))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, el := range elements {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if opts.Limiter != nil {
				if err := opts.Limiter.Wait(gctx); err != nil {
					return err
				}
			} else if err := gctx.Err(); err != nil {
				return err
			}

			doc, err := gen.Generate(gctx, el, opts.Model, opts.Context)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Warn("skipping element after failed generation",
					slog.String("element_id", el.ID),
					slog.String("name", el.Name),
					slog.Any("error", err))
				return nil
			}
			slots[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := make([]*Documentation, 0, len(elements))
	for _, doc := range slots {
		if doc != nil {
			docs = append(docs, doc)
		}
	}

	logger.Info("batch complete",
		slog.Int("total", len(elements)),
		slog.Int("successful", len(docs)))
	return docs, nil
}
