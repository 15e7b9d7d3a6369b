// Package analyzer extracts documentable elements from source code and
// computes complexity metrics over tree-sitter syntax trees.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/v-bommidi/ai-doc-generator/types"
)

// ErrMaxDepthExceeded is returned when a traversal goes deeper than the
// configured limit. No partial result is returned alongside it.
var ErrMaxDepthExceeded = errors.New("maximum traversal depth exceeded")

// FileResult is the outcome of extracting one source buffer.
type FileResult struct {
	File            string          `json:"file"`
	Elements        []types.Element `json:"elements"`
	HasSyntaxErrors bool            `json:"has_syntax_errors"`
}

// Extractor parses source code and pulls out functions, classes and methods.
// It owns a single parser and must not be used from multiple goroutines
// at once; create one Extractor per worker instead.
type Extractor struct {
	parser   *Parser
	grammar  Grammar
	logger   *slog.Logger
	maxDepth int
}

// NewExtractor creates an extractor bound to one language.
func NewExtractor(opts ...Option) *Extractor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Extractor{
		parser:   NewParser(cfg.language),
		grammar:  cfg.language.Grammar(),
		logger:   cfg.logger,
		maxDepth: cfg.maxDepth,
	}
	e.logger.Debug("code analyzer initialized", slog.String("language", cfg.language.Name()))
	return e
}

// Language returns the grammar name the extractor parses.
func (e *Extractor) Language() string {
	return e.parser.Language().Name()
}

// Extract returns every documentable element found in source.
func (e *Extractor) Extract(ctx context.Context, source []byte, filePath string) ([]types.Element, error) {
	res, err := e.ExtractFile(ctx, source, filePath)
	if err != nil {
		return nil, err
	}
	return res.Elements, nil
}

// ExtractFile is Extract plus the syntax-error signal of the parse.
func (e *Extractor) ExtractFile(ctx context.Context, source []byte, filePath string) (*FileResult, error) {
	tree, err := e.parser.Parse(ctx, source)
	if err != nil {
		e.logger.Error("failed to parse file", slog.String("file", filePath), slog.Any("error", err))
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}
	defer tree.Close()

	x := &extraction{
		walker:   walker{grammar: e.grammar, maxDepth: e.maxDepth},
		source:   tree.Source,
		filePath: filePath,
		language: e.Language(),
		logger:   e.logger,
		elements: []types.Element{},
	}

	if err := x.functions(tree.Root, false, 0); err != nil {
		return nil, fmt.Errorf("extract functions from %s: %w", filePath, err)
	}
	if err := x.classes(tree.Root, 0); err != nil {
		return nil, fmt.Errorf("extract classes from %s: %w", filePath, err)
	}

	if tree.HasSyntaxErrors {
		e.logger.Warn("source contains syntax errors", slog.String("file", filePath))
	}

	counts := CountKinds(x.elements)
	e.logger.Info("file parsed successfully",
		slog.String("file", filePath),
		slog.Int("functions", counts[types.KindFunction]),
		slog.Int("classes", counts[types.KindClass]),
		slog.Int("methods", counts[types.KindMethod]))

	return &FileResult{
		File:            filePath,
		Elements:        x.elements,
		HasSyntaxErrors: tree.HasSyntaxErrors,
	}, nil
}

// CountKinds tallies elements per kind.
func CountKinds(elements []types.Element) map[types.Kind]int {
	counts := make(map[types.Kind]int)
	for _, el := range elements {
		counts[el.Kind]++
	}
	return counts
}

// walker holds what every recursive pass needs: node types and the
// depth guard.
type walker struct {
	grammar  Grammar
	maxDepth int
}

func (w walker) enter(depth int) error {
	if w.maxDepth > 0 && depth > w.maxDepth {
		return fmt.Errorf("%w: depth %d exceeds limit %d", ErrMaxDepthExceeded, depth, w.maxDepth)
	}
	return nil
}

// definition returns n when it is a function definition, or the function
// wrapped by a decorated definition. Otherwise nil.
func (w walker) definition(n Node) Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case w.grammar.FunctionType:
		return n
	case w.grammar.DecoratedType:
		def := n.Field(w.grammar.DefinitionField)
		if def != nil && def.Type() == w.grammar.FunctionType {
			return def
		}
	}
	return nil
}

type extraction struct {
	walker
	source   []byte
	filePath string
	language string
	logger   *slog.Logger
	elements []types.Element
}

// functions collects function definitions below node. Class bodies are
// left to the class pass. Nested functions are always plain functions.
func (x *extraction) functions(node Node, isMethod bool, depth int) error {
	if err := x.enter(depth); err != nil {
		return err
	}

	switch node.Type() {
	case x.grammar.ClassType:
		return nil
	case x.grammar.FunctionType:
		x.addFunction(node, isMethod)
		isMethod = false
	}

	for i := range node.ChildCount() {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if err := x.functions(child, isMethod, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (x *extraction) addFunction(node Node, isMethod bool) {
	name := x.name(node)

	if isMethod && strings.HasPrefix(name, x.grammar.PrivatePrefix) && name != x.grammar.Constructor {
		x.logger.Debug("skipping private method", slog.String("name", name))
		return
	}

	kind := types.KindFunction
	if isMethod {
		kind = types.KindMethod
	}
	el := x.element(node, name, kind)
	x.elements = append(x.elements, el)

	x.logger.Debug("extracted function",
		slog.String("name", name),
		slog.String("type", string(kind)),
		slog.String("lines", fmt.Sprintf("%d-%d", el.LineStart, el.LineEnd)))
}

// classes collects every class definition below node together with the
// methods defined directly in its body. Functions nested deeper in a class
// body are collected as plain functions.
func (x *extraction) classes(node Node, depth int) error {
	if err := x.enter(depth); err != nil {
		return err
	}

	if node.Type() == x.grammar.ClassType {
		name := x.name(node)
		el := x.element(node, name, types.KindClass)
		x.elements = append(x.elements, el)

		x.logger.Debug("extracted class",
			slog.String("name", name),
			slog.String("lines", fmt.Sprintf("%d-%d", el.LineStart, el.LineEnd)))

		if body := node.Field(x.grammar.BodyField); body != nil {
			for i := range body.ChildCount() {
				child := body.Child(i)
				if child == nil {
					continue
				}
				// Defs under if/try in a class body are not methods.
				isMethod := true
				def := x.definition(child)
				if def == nil {
					def, isMethod = child, false
				}
				if err := x.functions(def, isMethod, depth+2); err != nil {
					return err
				}
			}
		}
	}

	for i := range node.ChildCount() {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if err := x.classes(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (x *extraction) name(node Node) string {
	if n := node.Field(x.grammar.NameField); n != nil {
		return nodeText(n, x.source)
	}
	return "unknown"
}

func (x *extraction) element(node Node, name string, kind types.Kind) types.Element {
	code := nodeText(node, x.source)
	return types.Element{
		ID:        ElementID(x.filePath, code),
		Name:      name,
		Source:    code,
		Kind:      kind,
		Language:  x.language,
		FilePath:  x.filePath,
		LineStart: node.StartLine(),
		LineEnd:   node.EndLine(),
		StartByte: node.StartByte(),
		EndByte:   node.EndByte(),
	}
}
