package analyzer

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrParseFailure is returned when no syntax tree could be produced.
var ErrParseFailure = errors.New("parse failure")

// Tree is the result of parsing one source buffer.
type Tree struct {
	Root   Node
	Source []byte

	// HasSyntaxErrors reports whether the grammar had to recover from
	// malformed input. The tree is still usable.
	HasSyntaxErrors bool

	tree *sitter.Tree
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Parser wraps a tree-sitter parser for a specific language.
// A Parser is not safe for concurrent use.
type Parser struct {
	parser *sitter.Parser
	lang   Language
}

// NewParser creates a new parser for the given language.
func NewParser(language Language) *Parser {
	p := sitter.NewParser()
	p.SetLanguage(language.TreeSitterLang())
	return &Parser{
		parser: p,
		lang:   language,
	}
}

// Language returns the language the parser is bound to.
func (p *Parser) Language() Language {
	return p.lang
}

// Parse parses source code and returns the syntax tree.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Tree, error) {
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("%w: source is not valid UTF-8", ErrParseFailure)
	}

	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%w: no tree produced", ErrParseFailure)
	}

	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, fmt.Errorf("%w: no root node", ErrParseFailure)
	}

	return &Tree{
		Root:            wrapNode(root),
		Source:          source,
		HasSyntaxErrors: root.HasError(),
		tree:            tree,
	}, nil
}
