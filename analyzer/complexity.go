package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/v-bommidi/ai-doc-generator/types"
)

// Analyze computes complexity metrics for a code fragment.
func (e *Extractor) Analyze(ctx context.Context, code string) (*types.ComplexityReport, error) {
	tree, err := e.parser.Parse(ctx, []byte(code))
	if err != nil {
		return nil, fmt.Errorf("analyze complexity: %w", err)
	}
	defer tree.Close()

	w := walker{grammar: e.grammar, maxDepth: e.maxDepth}

	decisions, err := w.decisions(tree.Root, 0)
	if err != nil {
		return nil, fmt.Errorf("analyze complexity: %w", err)
	}
	nesting, err := w.nesting(tree.Root, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("analyze complexity: %w", err)
	}

	cyclomatic := 1 + decisions
	return &types.ComplexityReport{
		Lines:        strings.Count(code, "\n") + 1,
		Cyclomatic:   cyclomatic,
		NestingDepth: nesting,
		Parameters:   w.parameters(tree.Root, tree.Source),
		Rating:       types.RatingFor(cyclomatic),
	}, nil
}

// decisions counts decision-point nodes in the subtree rooted at node.
func (w walker) decisions(node Node, depth int) (int, error) {
	if err := w.enter(depth); err != nil {
		return 0, err
	}

	count := 0
	if w.grammar.isDecision(node.Type()) {
		count++
	}

	for i := range node.ChildCount() {
		child := node.Child(i)
		if child == nil {
			continue
		}
		n, err := w.decisions(child, depth+1)
		if err != nil {
			return 0, err
		}
		count += n
	}
	return count, nil
}

// nesting returns the deepest stack of nesting constructs at or below node,
// given current constructs already open above it.
func (w walker) nesting(node Node, current, depth int) (int, error) {
	if err := w.enter(depth); err != nil {
		return 0, err
	}

	if w.grammar.isNesting(node.Type()) {
		current++
	}

	deepest := current
	for i := range node.ChildCount() {
		child := node.Child(i)
		if child == nil {
			continue
		}
		d, err := w.nesting(child, current, depth+1)
		if err != nil {
			return 0, err
		}
		deepest = max(deepest, d)
	}
	return deepest, nil
}

// parameters counts the plain identifier parameters of the fragment's
// leading function definition, skipping the receiver. Fragments that do
// not start with a function definition have no parameters.
func (w walker) parameters(root Node, source []byte) int {
	if root.ChildCount() == 0 {
		return 0
	}
	fn := w.definition(root.Child(0))
	if fn == nil {
		return 0
	}
	params := fn.Field(w.grammar.ParametersField)
	if params == nil {
		return 0
	}

	count := 0
	for i := range params.ChildCount() {
		child := params.Child(i)
		if child == nil || child.Type() != w.grammar.IdentifierType {
			continue
		}
		if nodeText(child, source) != w.grammar.SelfName {
			count++
		}
	}
	return count
}
