package analyzer

import sitter "github.com/smacker/go-tree-sitter"

// Node is the read-only view of a syntax tree node used by every pass.
// Node values are only valid until the Tree they came from is closed.
type Node interface {
	// Type returns the grammar's type tag (e.g., "function_definition").
	Type() string

	StartByte() int
	EndByte() int

	// StartLine and EndLine are 1-based.
	StartLine() int
	EndLine() int

	// Field returns the child stored under a grammar field name, or nil.
	Field(name string) Node

	ChildCount() int
	Child(i int) Node
}

type sitterNode struct {
	n *sitter.Node
}

func wrapNode(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return sitterNode{n: n}
}

func (s sitterNode) Type() string   { return s.n.Type() }
func (s sitterNode) StartByte() int { return int(s.n.StartByte()) }
func (s sitterNode) EndByte() int   { return int(s.n.EndByte()) }
func (s sitterNode) StartLine() int { return int(s.n.StartPoint().Row) + 1 }
func (s sitterNode) EndLine() int   { return int(s.n.EndPoint().Row) + 1 }
func (s sitterNode) ChildCount() int {
	return int(s.n.ChildCount())
}

func (s sitterNode) Field(name string) Node {
	return wrapNode(s.n.ChildByFieldName(name))
}

func (s sitterNode) Child(i int) Node {
	return wrapNode(s.n.Child(i))
}

// nodeText returns the exact source slice covered by n.
func nodeText(n Node, source []byte) string {
	start, end := n.StartByte(), n.EndByte()
	if start < 0 || end > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}
