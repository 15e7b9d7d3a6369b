package analyzer

import (
	"context"
	"fmt"
	"strings"
)

const (
	// NoDescription is returned when a fragment carries no docstring.
	NoDescription = "no description found"
	// NoSignature is returned when a fragment has no function definition.
	NoSignature = "no signature found"
)

// Description returns the docstring of the first top-level function or
// class in code. Only that first definition is consulted.
func (e *Extractor) Description(ctx context.Context, code string) (string, bool, error) {
	tree, err := e.parser.Parse(ctx, []byte(code))
	if err != nil {
		return "", false, fmt.Errorf("extract description: %w", err)
	}
	defer tree.Close()

	g := e.grammar
	root := tree.Root
	for i := range root.ChildCount() {
		node := root.Child(i)
		if node == nil {
			continue
		}
		if t := node.Type(); t != g.FunctionType && t != g.ClassType {
			continue
		}
		if doc, ok := e.docstring(node, tree.Source); ok {
			return doc, true, nil
		}
		break
	}
	return NoDescription, false, nil
}

func (e *Extractor) docstring(def Node, source []byte) (string, bool) {
	g := e.grammar
	body := def.Field(g.BodyField)
	if body == nil || body.ChildCount() == 0 {
		return "", false
	}
	first := body.Child(0)
	if first == nil || first.Type() != g.ExpressionStatementType || first.ChildCount() == 0 {
		return "", false
	}
	str := first.Child(0)
	if str == nil || str.Type() != g.StringType {
		return "", false
	}
	return trimDocstring(nodeText(str, source)), true
}

// trimDocstring removes double quotes, then single quotes, from both ends
// and trims surrounding whitespace. Quote characters that are part of the
// text itself are removed too when they touch either end.
func trimDocstring(s string) string {
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, `'`)
	return strings.TrimSpace(s)
}

// Signature returns the name and parameter list of the first top-level
// function definition in code, e.g. "add(a, b)".
func (e *Extractor) Signature(ctx context.Context, code string) (string, bool, error) {
	tree, err := e.parser.Parse(ctx, []byte(code))
	if err != nil {
		return "", false, fmt.Errorf("extract signature: %w", err)
	}
	defer tree.Close()

	g := e.grammar
	root := tree.Root
	for i := range root.ChildCount() {
		node := root.Child(i)
		if node == nil || node.Type() != g.FunctionType {
			continue
		}
		name := node.Field(g.NameField)
		params := node.Field(g.ParametersField)
		if name == nil || params == nil {
			break
		}
		return nodeText(name, tree.Source) + nodeText(params, tree.Source), true, nil
	}
	return NoSignature, false, nil
}
