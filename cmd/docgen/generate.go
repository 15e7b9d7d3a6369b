package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/v-bommidi/ai-doc-generator/docgen"
	"github.com/v-bommidi/ai-doc-generator/processor"
)

type generateResult struct {
	*docgen.Documentation
	Translation string `json:"translation,omitempty"`
}

func generateCommand(s streams) *cli.Command {
	flags := append(sourceFlags(),
		&cli.StringFlag{
			Name:  "model",
			Usage: "model name (default from DEFAULT_MODEL, or the mock)",
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "requests in flight (default from MAX_CONCURRENT)",
		},
		&cli.StringFlag{
			Name:  "context",
			Usage: "extra context sent with every element",
		},
		&cli.StringFlag{
			Name:  "translate",
			Usage: "also translate each summary and description (en, es, zh, fr, de, ja, hi, ar)",
		},
	)

	return &cli.Command{
		Name:  "generate",
		Usage: "generate documentation for each element",
		Description: "Uses the mock generator unless an API key is configured.\n\n" +
			"Examples:\n" +
			"  docgen generate -f app.py\n" +
			"  docgen generate --path src --model gpt-4 --translate es",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := s.env(cmd)
			if err != nil {
				return err
			}

			target := docgen.LanguageCode(cmd.String("translate"))
			if target != "" && !target.Valid() {
				return fmt.Errorf("%w: %q", docgen.ErrUnsupportedLanguage, target)
			}

			elements, err := e.elements(ctx, cmd)
			if err != nil {
				return err
			}

			gen, err := docgen.NewGenerator(e.cfg, e.logger)
			if err != nil {
				return err
			}
			if c, ok := gen.(*docgen.CachedGenerator); ok {
				defer c.Close()
			}

			model := cmd.String("model")
			if model == "" && !e.cfg.UseMock() {
				model = e.cfg.DefaultModel
			}
			concurrency := e.cfg.MaxConcurrent
			if cmd.IsSet("concurrency") {
				concurrency = cmd.Int("concurrency")
			}

			docs, err := docgen.BatchGenerate(ctx, gen, elements, docgen.BatchOptions{
				Model:         model,
				Context:       cmd.String("context"),
				MaxConcurrent: concurrency,
				Limiter:       docgen.NewLimiter(e.cfg.RateLimitRequests, e.cfg.RateWindow()),
				Logger:        e.logger,
			})
			if err != nil {
				return err
			}

			results := make([]generateResult, 0, len(docs))
			for _, doc := range docs {
				r := generateResult{Documentation: doc}
				if target != "" && target != doc.Language {
					text := doc.Summary + "\n\n" + doc.DetailedDescription
					r.Translation, err = gen.Translate(ctx, text, doc.Language, target, model)
					if err != nil {
						e.logger.Warn("translation failed",
							slog.String("element_id", doc.ElementID),
							slog.Any("error", err))
					}
				}
				results = append(results, r)
			}
			return e.out.Write(results)
		},
	}
}

func statsCommand(s streams) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "count files and elements under a directory",
		Flags: sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := s.env(cmd)
			if err != nil {
				return err
			}

			results, err := e.processor(cmd).ProcessDirectory(ctx, cmd.String("path"), e.scanOptions(cmd))
			if err != nil {
				return err
			}
			return e.out.Write(processor.Stats(results))
		},
	}
}
