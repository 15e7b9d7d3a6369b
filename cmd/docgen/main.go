package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/urfave/cli/v3"
	"github.com/v-bommidi/ai-doc-generator/config"
	"github.com/v-bommidi/ai-doc-generator/logging"
	"github.com/v-bommidi/ai-doc-generator/output"
	"github.com/v-bommidi/ai-doc-generator/processor"
	"github.com/v-bommidi/ai-doc-generator/scanner"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)

	if err := app.Run(context.Background(), os.Args); err != nil {
		output.WriteError(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	s := streams{stdout: stdout, stderr: stderr}

	return &cli.Command{
		Name:  "docgen",
		Usage: "extract, analyze and document Python code",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "dotenv file with settings (default .env if present)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "human-readable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize output",
			},
		},
		Commands: []*cli.Command{
			extractCommand(s),
			complexityCommand(s),
			describeCommand(s),
			signatureCommand(s),
			generateCommand(s),
			statsCommand(s),
		},
		Writer:    stdout,
		ErrWriter: stderr,
	}
}

type streams struct {
	stdout io.Writer
	stderr io.Writer
}

// env is what every command needs after global flags are applied.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	out    *output.Writer
}

func (s streams) env(cmd *cli.Command) (*env, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	return &env{
		cfg:    cfg,
		logger: logging.New(s.stderr, logging.Config{Level: cfg.LogLevel, Debug: cfg.Debug}),
		out:    output.New(output.Config{Compact: cmd.Bool("compact"), Output: s.stdout}),
	}, nil
}

func (e *env) processor(cmd *cli.Command) *processor.Processor {
	return processor.New(
		processor.WithLogger(e.logger),
		processor.WithJobs(cmd.Int("jobs")),
		processor.WithMaxBytes(cmd.Int64("max-bytes")),
	)
}

// scanOptions resolves --recursive and --exclude, falling back to the
// configured exclude patterns.
func (e *env) scanOptions(cmd *cli.Command) processor.ScanOptions {
	exclude := e.cfg.ExcludePatterns
	if cmd.IsSet("exclude") {
		exclude = cmd.StringSlice("exclude")
	}
	return processor.ScanOptions{
		Recursive: cmd.Bool("recursive"),
		Exclude:   exclude,
	}
}

// sourceFlags selects a single file or a directory tree.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "single file to process",
		},
		&cli.StringFlag{
			Name:  "path",
			Value: ".",
			Usage: "root directory to scan",
		},
		&cli.BoolFlag{
			Name:    "recursive",
			Aliases: []string{"r"},
			Value:   true,
			Usage:   "descend into subdirectories",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "skip paths containing this text or matching this glob",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "number of parallel workers",
		},
		&cli.Int64Flag{
			Name:  "max-bytes",
			Value: scanner.DefaultMaxBytes,
			Usage: "skip files larger than this",
		},
	}
}
