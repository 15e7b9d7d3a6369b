// Package scanner discovers source files for the extractor.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/v-bommidi/ai-doc-generator/analyzer"
	"github.com/v-bommidi/ai-doc-generator/types"
)

// DefaultMaxBytes is the file size limit callers use when none is given.
const DefaultMaxBytes = 2 * 1024 * 1024

// DefaultIgnoreDirs returns the directories that are never descended into.
func DefaultIgnoreDirs() map[string]struct{} {
	return map[string]struct{}{
		".git":          {},
		".hg":           {},
		".svn":          {},
		".jj":           {},
		"node_modules":  {},
		".venv":         {},
		"__pycache__":   {},
		".mypy_cache":   {},
		".pytest_cache": {},
		".tox":          {},
		".cache":        {},
	}
}

// Config holds scanner configuration.
type Config struct {
	Root      string
	Language  analyzer.Language
	Recursive bool

	// Exclude drops every file whose relative path contains an entry.
	// Entries with glob metacharacters are matched against the whole
	// slash-separated relative path instead.
	Exclude []string

	IgnoreDirs map[string]struct{}
	MaxBytes   int64
}

// Scanner discovers files for processing.
type Scanner struct {
	cfg       Config
	substring []string
	globs     []glob.Glob
}

// New creates a scanner. It fails when an exclude glob does not compile.
func New(cfg Config) (*Scanner, error) {
	if cfg.Language == nil {
		cfg.Language = analyzer.Python{}
	}
	if cfg.IgnoreDirs == nil {
		cfg.IgnoreDirs = DefaultIgnoreDirs()
	}

	s := &Scanner{cfg: cfg}
	for _, pattern := range cfg.Exclude {
		if pattern == "" {
			continue
		}
		if !strings.ContainsAny(pattern, "*?[{") {
			s.substring = append(s.substring, pattern)
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", pattern, err)
		}
		s.globs = append(s.globs, g)
	}
	return s, nil
}

// Collect finds all matching files under Root, sorted by display path.
func (s *Scanner) Collect() ([]types.FileJob, error) {
	absRoot, err := filepath.Abs(s.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	jobs := []types.FileJob{}
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if !s.cfg.Recursive || s.shouldIgnoreDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isSupportedFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if s.Excluded(rel) {
			return nil
		}

		if s.cfg.MaxBytes > 0 {
			info, err := d.Info()
			if err != nil {
				// Skip files we can't stat
				return nil
			}
			if info.Size() > s.cfg.MaxBytes {
				return nil
			}
		}

		jobs = append(jobs, types.FileJob{
			AbsPath:     path,
			DisplayPath: rel,
		})
		return nil
	})

	if err != nil {
		return nil, err
	}

	slices.SortFunc(jobs, func(a, b types.FileJob) int {
		return strings.Compare(a.DisplayPath, b.DisplayPath)
	})
	return jobs, nil
}

// CollectSingle returns a single file as a FileJob.
func (s *Scanner) CollectSingle(filePath string) (types.FileJob, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return types.FileJob{}, fmt.Errorf("resolve path: %w", err)
	}

	return types.FileJob{
		AbsPath:     absPath,
		DisplayPath: filepath.Base(absPath),
	}, nil
}

// Excluded reports whether a slash-separated relative path matches any
// exclude entry.
func (s *Scanner) Excluded(rel string) bool {
	for _, sub := range s.substring {
		if strings.Contains(rel, sub) {
			return true
		}
	}
	for _, g := range s.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func (s *Scanner) shouldIgnoreDir(name string) bool {
	_, ok := s.cfg.IgnoreDirs[name]
	return ok
}

func (s *Scanner) isSupportedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	return slices.Contains(s.cfg.Language.Extensions(), ext)
}
