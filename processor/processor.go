// Package processor runs the extractor over many files with a worker pool.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/v-bommidi/ai-doc-generator/analyzer"
	"github.com/v-bommidi/ai-doc-generator/logging"
	"github.com/v-bommidi/ai-doc-generator/scanner"
	"github.com/v-bommidi/ai-doc-generator/types"
	"golang.org/x/sync/errgroup"
)

// Processor extracts elements from files concurrently. Each worker owns
// its own Extractor, so a Processor is safe for concurrent use.
type Processor struct {
	language analyzer.Language
	logger   *slog.Logger
	jobs     int
	maxDepth int
	maxBytes int64
}

// Option configures a Processor.
type Option func(*Processor)

// WithJobs sets the number of workers. Values < 1 mean one per CPU.
func WithJobs(n int) Option {
	return func(p *Processor) { p.jobs = n }
}

// WithLogger sets the logger shared by the processor and its extractors.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLanguage selects the grammar. Defaults to Python.
func WithLanguage(lang analyzer.Language) Option {
	return func(p *Processor) {
		if lang != nil {
			p.language = lang
		}
	}
}

// WithMaxDepth is passed through to every extractor.
func WithMaxDepth(depth int) Option {
	return func(p *Processor) { p.maxDepth = depth }
}

// WithMaxBytes skips files larger than n bytes during directory scans.
func WithMaxBytes(n int64) Option {
	return func(p *Processor) { p.maxBytes = n }
}

// New creates a processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		language: analyzer.Python{},
		logger:   logging.Discard(),
		maxDepth: analyzer.DefaultMaxDepth,
		maxBytes: scanner.DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.jobs < 1 {
		p.jobs = runtime.NumCPU()
	}
	return p
}

func (p *Processor) newExtractor() *analyzer.Extractor {
	return analyzer.NewExtractor(
		analyzer.WithLanguage(p.language),
		analyzer.WithLogger(p.logger),
		analyzer.WithMaxDepth(p.maxDepth),
	)
}

// ScanOptions selects the files ProcessDirectory visits.
type ScanOptions struct {
	Recursive bool
	Exclude   []string
}

// ProcessDirectory extracts every matching file under dir. Results are
// keyed by the file's slash-separated path relative to dir. Files that
// cannot be read or parsed are logged and left out.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string, opts ScanOptions) (map[string][]types.Element, error) {
	s, err := scanner.New(scanner.Config{
		Root:      dir,
		Language:  p.language,
		Recursive: opts.Recursive,
		Exclude:   opts.Exclude,
		MaxBytes:  p.maxBytes,
	})
	if err != nil {
		return nil, err
	}

	files, err := s.Collect()
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	p.logger.Info("processing directory",
		slog.String("directory", dir),
		slog.Int("files", len(files)),
		slog.Bool("recursive", opts.Recursive))

	results, err := p.ProcessFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]types.Element, len(results))
	for _, r := range results {
		out[r.File] = r.Elements
	}
	return out, nil
}

// ProcessFile extracts a single file. The element paths are the path as given.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*analyzer.FileResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.newExtractor().ExtractFile(ctx, source, path)
}

// ProcessFiles runs the worker pool over files and returns one result per
// successfully processed file, sorted by path. It stops early and returns
// the context error when ctx is cancelled.
func (p *Processor) ProcessFiles(ctx context.Context, files []types.FileJob) ([]analyzer.FileResult, error) {
	if len(files) == 0 {
		return []analyzer.FileResult{}, nil
	}

	results := make(chan analyzer.FileResult, 128)
	jobQueue := make(chan types.FileJob, 128)

	workerCount := min(max(p.jobs, 1), len(files))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobQueue)
		for _, f := range files {
			select {
			case jobQueue <- f:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range workerCount {
		g.Go(func() error {
			e := p.newExtractor()
			for job := range jobQueue {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, ok := p.processJob(gctx, e, job)
				if !ok {
					continue
				}
				select {
				case results <- res:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	var poolErr error
	go func() {
		poolErr = g.Wait()
		close(results)
	}()

	all := make([]analyzer.FileResult, 0, len(files))
	for r := range results {
		all = append(all, r)
	}
	if poolErr != nil {
		return nil, poolErr
	}

	slices.SortFunc(all, func(a, b analyzer.FileResult) int {
		return strings.Compare(a.File, b.File)
	})
	return all, nil
}

func (p *Processor) processJob(ctx context.Context, e *analyzer.Extractor, job types.FileJob) (analyzer.FileResult, bool) {
	source, err := os.ReadFile(job.AbsPath)
	if err != nil {
		p.logger.Error("failed to process file", slog.String("file", job.DisplayPath), slog.Any("error", err))
		return analyzer.FileResult{}, false
	}

	res, err := e.ExtractFile(ctx, source, job.DisplayPath)
	if err != nil {
		p.logger.Error("failed to process file", slog.String("file", job.DisplayPath), slog.Any("error", err))
		return analyzer.FileResult{}, false
	}
	return *res, true
}

// Statistics summarizes a directory extraction.
type Statistics struct {
	TotalFiles    int `json:"total_files"`
	TotalElements int `json:"total_elements"`
	Functions     int `json:"functions"`
	Classes       int `json:"classes"`
	Methods       int `json:"methods"`
}

// Stats counts files and elements per kind.
func Stats(results map[string][]types.Element) Statistics {
	st := Statistics{TotalFiles: len(results)}
	for _, elements := range results {
		counts := analyzer.CountKinds(elements)
		st.TotalElements += len(elements)
		st.Functions += counts[types.KindFunction]
		st.Classes += counts[types.KindClass]
		st.Methods += counts[types.KindMethod]
	}
	return st
}
