package main

import (
	"context"
	"slices"

	"github.com/urfave/cli/v3"
	"github.com/v-bommidi/ai-doc-generator/analyzer"
	"github.com/v-bommidi/ai-doc-generator/types"
)

func extractCommand(s streams) *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "extract functions, classes and methods",
		Description: "Print every documentable element with its source and location.\n\n" +
			"Examples:\n" +
			"  docgen extract -f app.py\n" +
			"  docgen extract --path src --exclude test_ --exclude '**/migrations/**'",
		Flags: sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := s.env(cmd)
			if err != nil {
				return err
			}

			p := e.processor(cmd)
			if file := cmd.String("file"); file != "" {
				res, err := p.ProcessFile(ctx, file)
				if err != nil {
					return err
				}
				return e.out.Write(res)
			}

			results, err := p.ProcessDirectory(ctx, cmd.String("path"), e.scanOptions(cmd))
			if err != nil {
				return err
			}
			return e.out.Write(results)
		},
	}
}

// elements collects the elements selected by --file or --path, ordered by
// file and then by extraction order.
func (e *env) elements(ctx context.Context, cmd *cli.Command) ([]types.Element, error) {
	p := e.processor(cmd)

	if file := cmd.String("file"); file != "" {
		res, err := p.ProcessFile(ctx, file)
		if err != nil {
			return nil, err
		}
		return res.Elements, nil
	}

	results, err := p.ProcessDirectory(ctx, cmd.String("path"), e.scanOptions(cmd))
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(results))
	for f := range results {
		files = append(files, f)
	}
	slices.Sort(files)

	var all []types.Element
	for _, f := range files {
		all = append(all, results[f]...)
	}
	return all, nil
}

type elementRef struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Kind      types.Kind `json:"kind"`
	File      string     `json:"file"`
	LineStart int        `json:"line_start"`
	LineEnd   int        `json:"line_end"`
}

func refOf(el types.Element) elementRef {
	return elementRef{
		ID:        el.ID,
		Name:      el.Name,
		Kind:      el.Kind,
		File:      el.FilePath,
		LineStart: el.LineStart,
		LineEnd:   el.LineEnd,
	}
}

type complexityResult struct {
	elementRef
	Complexity *types.ComplexityReport `json:"complexity"`
}

func complexityCommand(s streams) *cli.Command {
	return &cli.Command{
		Name:  "complexity",
		Usage: "report complexity metrics per element",
		Flags: sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := s.env(cmd)
			if err != nil {
				return err
			}
			elements, err := e.elements(ctx, cmd)
			if err != nil {
				return err
			}

			x := analyzer.NewExtractor(analyzer.WithLogger(e.logger))
			results := make([]complexityResult, 0, len(elements))
			for _, el := range elements {
				report, err := x.Analyze(ctx, el.Source)
				if err != nil {
					return err
				}
				results = append(results, complexityResult{elementRef: refOf(el), Complexity: report})
			}
			return e.out.Write(results)
		},
	}
}

type textResult struct {
	elementRef
	Text  string `json:"text"`
	Found bool   `json:"found"`
}

func describeCommand(s streams) *cli.Command {
	return &cli.Command{
		Name:  "describe",
		Usage: "print the docstring of each element",
		Flags: sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return s.perElement(ctx, cmd, (*analyzer.Extractor).Description)
		},
	}
}

func signatureCommand(s streams) *cli.Command {
	return &cli.Command{
		Name:  "signature",
		Usage: "print the signature of each function and method",
		Flags: sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return s.perElement(ctx, cmd, (*analyzer.Extractor).Signature)
		},
	}
}

// perElement runs a single-pass query over each element's own source.
func (s streams) perElement(
	ctx context.Context,
	cmd *cli.Command,
	query func(*analyzer.Extractor, context.Context, string) (string, bool, error),
) error {
	e, err := s.env(cmd)
	if err != nil {
		return err
	}
	elements, err := e.elements(ctx, cmd)
	if err != nil {
		return err
	}

	x := analyzer.NewExtractor(analyzer.WithLogger(e.logger))
	results := make([]textResult, 0, len(elements))
	for _, el := range elements {
		text, found, err := query(x, ctx, el.Source)
		if err != nil {
			return err
		}
		results = append(results, textResult{elementRef: refOf(el), Text: text, Found: found})
	}
	return e.out.Write(results)
}
