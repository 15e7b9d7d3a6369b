package docgen

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/v-bommidi/ai-doc-generator/types"
)

const (
	mockDefaultModel    = "mock-gpt-4"
	mockConfidence      = 0.85
	mockDefaultTypeHint = "Any"
)

var (
	defNameRe   = regexp.MustCompile(`def\s+(\w+)`)
	classNameRe = regexp.MustCompile(`class\s+(\w+)`)
	defParamsRe = regexp.MustCompile(`def\s+\w+\((.*?)\):`)
)

// MockGenerator builds plausible documentation from the code text alone.
// It makes no network calls and is deterministic apart from GeneratedAt.
type MockGenerator struct {
	now func() time.Time
}

// NewMockGenerator creates a mock generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{now: time.Now}
}

// Models lists the mock model names.
func (m *MockGenerator) Models() []string {
	return []string{mockDefaultModel, "mock-claude"}
}

// DefaultModel returns the model used for an empty model name.
func (m *MockGenerator) DefaultModel() string {
	return mockDefaultModel
}

// Generate documents el from its source text.
func (m *MockGenerator) Generate(_ context.Context, el types.Element, model, _ string) (*Documentation, error) {
	if model == "" {
		model = mockDefaultModel
	}

	code := el.Source
	name := mockName(code)
	kind := el.Kind
	if kind == "" {
		kind = types.KindFunction
	}

	doc := &Documentation{
		ElementID: el.ID,
		Summary:   fmt.Sprintf("Implements the %s operation", name),
		DetailedDescription: fmt.Sprintf("This %s provides functionality for %s.\n\n"+
			"It processes the input parameters and returns the computed result.", kind, name),
		Parameters:  mockParameters(code),
		Examples:    []string{fmt.Sprintf("%s(example_param)  # Example usage", name)},
		Complexity:  "O(1)",
		Language:    English,
		Model:       model,
		Confidence:  mockConfidence,
		GeneratedAt: m.now().UTC(),
		TokensUsed:  EstimateTokens(code),
	}
	if strings.Contains(code, "return") {
		doc.Returns = fmt.Sprintf("Result of the %s operation", name)
	}
	if strings.Contains(code, "raise") {
		doc.Raises = []string{"ValueError: If input parameters are invalid"}
	}
	if strings.Contains(code, "for") || strings.Contains(code, "while") {
		doc.Complexity = "O(n)"
	}
	doc.normalize()
	return doc, nil
}

// Translate prefixes text with the target language tag.
func (m *MockGenerator) Translate(_ context.Context, text string, _, to LanguageCode, _ string) (string, error) {
	if !to.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, to)
	}
	return fmt.Sprintf("[Translated to %s]\n\n%s", to, text), nil
}

// mockName returns the first function name, else the first class name.
func mockName(code string) string {
	if m := defNameRe.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	if m := classNameRe.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return "unknown"
}

// mockParameters splits the first single-line signature into parameters.
// Signatures carrying a return annotation are not matched.
func mockParameters(code string) []ParameterDoc {
	m := defParamsRe.FindStringSubmatch(code)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return []ParameterDoc{}
	}

	params := []ParameterDoc{}
	for _, raw := range strings.Split(m[1], ",") {
		param := strings.TrimSpace(raw)
		if param == "" || param == "self" {
			continue
		}

		decl, def, hasDefault := strings.Cut(param, "=")
		name, hint, typed := strings.Cut(decl, ":")
		name = strings.TrimSpace(name)
		hint = strings.TrimSpace(hint)
		if !typed || hint == "" {
			hint = mockDefaultTypeHint
		}

		params = append(params, ParameterDoc{
			Name:        name,
			Type:        hint,
			Description: fmt.Sprintf("Parameter %s for the function", name),
			Default:     strings.TrimSpace(def),
			Required:    !hasDefault,
		})
	}
	return params
}
