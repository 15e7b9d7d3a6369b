package analyzer

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language defines a grammar the analyzer can extract elements from.
type Language interface {
	// Name returns the language identifier (e.g., "python").
	Name() string

	// Extensions returns file extensions for this language (e.g., [".py"]).
	Extensions() []string

	// TreeSitterLang returns the tree-sitter language grammar.
	TreeSitterLang() *sitter.Language

	// Grammar returns the node types and naming conventions the
	// extraction and complexity passes rely on.
	Grammar() Grammar
}

// Grammar names the node types, fields and conventions of a language.
type Grammar struct {
	FunctionType  string
	ClassType     string
	DecoratedType string

	NameField       string
	BodyField       string
	ParametersField string
	DefinitionField string

	ExpressionStatementType string
	StringType              string
	IdentifierType          string

	// PrivatePrefix marks members excluded from method extraction.
	PrivatePrefix string
	// Constructor is always kept even though it carries PrivatePrefix.
	Constructor string
	// SelfName is the receiver parameter skipped when counting parameters.
	SelfName string

	// DecisionTypes each add one to cyclomatic complexity.
	DecisionTypes map[string]struct{}
	// NestingTypes each add one level of nesting depth.
	NestingTypes map[string]struct{}
}

func (g Grammar) isDecision(nodeType string) bool {
	_, ok := g.DecisionTypes[nodeType]
	return ok
}

func (g Grammar) isNesting(nodeType string) bool {
	_, ok := g.NestingTypes[nodeType]
	return ok
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Language)
)

// Register adds a language to the registry.
func Register(lang Language) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[lang.Name()] = lang
}

// Get returns a language by name, or nil if not found.
func Get(name string) Language {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}

// ByExtension finds a language by file extension.
func ByExtension(ext string) Language {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, lang := range registry {
		for _, e := range lang.Extensions() {
			if e == ext {
				return lang
			}
		}
	}
	return nil
}
