package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Python implements the Language interface for Python source code.
type Python struct{}

func init() {
	Register(Python{})
}

func (Python) Name() string {
	return "python"
}

func (Python) Extensions() []string {
	return []string{".py"}
}

func (Python) TreeSitterLang() *sitter.Language {
	return python.GetLanguage()
}

func (Python) Grammar() Grammar {
	return pythonGrammar
}

var pythonGrammar = Grammar{
	FunctionType:  "function_definition",
	ClassType:     "class_definition",
	DecoratedType: "decorated_definition",

	NameField:       "name",
	BodyField:       "body",
	ParametersField: "parameters",
	DefinitionField: "definition",

	ExpressionStatementType: "expression_statement",
	StringType:              "string",
	IdentifierType:          "identifier",

	PrivatePrefix: "_",
	Constructor:   "__init__",
	SelfName:      "self",

	DecisionTypes: map[string]struct{}{
		"if_statement":           {},
		"for_statement":          {},
		"while_statement":        {},
		"except_clause":          {},
		"with_statement":         {},
		"boolean_operator":       {}, // and, or
		"conditional_expression": {}, // x if c else y
	},
	NestingTypes: map[string]struct{}{
		"if_statement":        {},
		"for_statement":       {},
		"while_statement":     {},
		"with_statement":      {},
		"try_statement":       {},
		"function_definition": {},
		"class_definition":    {},
	},
}
