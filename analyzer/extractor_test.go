package analyzer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/v-bommidi/ai-doc-generator/types"
)

const calculatorSource = `def add(a, b):
    """Add two numbers."""
    return a + b

class Calculator:
    """A calculator."""

    def __init__(self):
        self.result = 0

    def multiply(self, a, b):
        return a * b

    def _reset(self):
        self.result = 0
`

func TestExtract(t *testing.T) {
	e := NewExtractor()

	elements, err := e.Extract(context.Background(), []byte(calculatorSource), "calc.py")
	require.NoError(t, err)
	require.Len(t, elements, 4)

	var names []string
	for _, el := range elements {
		names = append(names, string(el.Kind)+":"+el.Name)
	}
	assert.Equal(t, []string{
		"function:add",
		"class:Calculator",
		"method:__init__",
		"method:multiply",
	}, names)

	counts := CountKinds(elements)
	assert.Equal(t, 1, counts[types.KindFunction])
	assert.Equal(t, 1, counts[types.KindClass])
	assert.Equal(t, 2, counts[types.KindMethod])
}

func TestExtractElementInvariants(t *testing.T) {
	e := NewExtractor()
	source := []byte(calculatorSource)

	elements, err := e.Extract(context.Background(), source, "calc.py")
	require.NoError(t, err)
	require.NotEmpty(t, elements)

	for _, el := range elements {
		t.Run(el.Name, func(t *testing.T) {
			require.NoError(t, el.Validate())
			assert.Equal(t, string(source[el.StartByte:el.EndByte]), el.Source)
			assert.Equal(t, ElementID("calc.py", el.Source), el.ID)
			assert.Len(t, el.ID, 16)
			assert.Equal(t, "python", el.Language)
			assert.Equal(t, "calc.py", el.FilePath)
			assert.LessOrEqual(t, el.LineStart, el.LineEnd)
		})
	}
}

func TestExtractIDs(t *testing.T) {
	e := NewExtractor()
	source := []byte("def same():\n    return 1\n")

	first, err := e.Extract(context.Background(), source, "a.py")
	require.NoError(t, err)
	again, err := e.Extract(context.Background(), source, "a.py")
	require.NoError(t, err)
	other, err := e.Extract(context.Background(), source, "b.py")
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, again, 1)
	require.Len(t, other, 1)

	assert.Equal(t, first[0].ID, again[0].ID)
	assert.NotEqual(t, first[0].ID, other[0].ID)
}

func TestElementID(t *testing.T) {
	id := ElementID("x.py", "def f(): pass")
	assert.Len(t, id, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", id)
	assert.Equal(t, id, ElementID("x.py", "def f(): pass"))
	assert.NotEqual(t, id, ElementID("x.py", "def g(): pass"))
}

func TestExtractPrivateMethods(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []string
	}{
		{
			name:     "constructor kept",
			source:   "class A:\n    def __init__(self):\n        pass\n",
			expected: []string{"class:A", "method:__init__"},
		},
		{
			name:     "private method dropped",
			source:   "class A:\n    def _helper(self):\n        pass\n",
			expected: []string{"class:A"},
		},
		{
			name:     "dunder method dropped",
			source:   "class A:\n    def __repr__(self):\n        return 'A'\n",
			expected: []string{"class:A"},
		},
		{
			name:     "guarded defs become functions",
			source:   "class A:\n    if TYPE_CHECKING:\n        def typed(self):\n            pass\n    try:\n        def _fast(self):\n            pass\n    except ImportError:\n        pass\n",
			expected: []string{"class:A", "function:typed", "function:_fast"},
		},
		{
			name:     "private function kept",
			source:   "def _helper():\n    pass\n",
			expected: []string{"function:_helper"},
		},
	}

	e := NewExtractor()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			elements, err := e.Extract(context.Background(), []byte(tc.source), "test.py")
			require.NoError(t, err)

			var got []string
			for _, el := range elements {
				got = append(got, string(el.Kind)+":"+el.Name)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestExtractEmpty(t *testing.T) {
	e := NewExtractor()

	res, err := e.ExtractFile(context.Background(), nil, "empty.py")
	require.NoError(t, err)
	assert.NotNil(t, res.Elements)
	assert.Empty(t, res.Elements)
	assert.False(t, res.HasSyntaxErrors)
}

func TestExtractInvalidUTF8(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte{'d', 'e', 'f', ' ', 0xff, 0xfe}, "bad.py")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestExtractSyntaxErrors(t *testing.T) {
	e := NewExtractor()

	res, err := e.ExtractFile(context.Background(), []byte("def broken(:\n    pass\n"), "broken.py")
	require.NoError(t, err)
	assert.True(t, res.HasSyntaxErrors)

	res, err = e.ExtractFile(context.Background(), []byte("def fine():\n    pass\n"), "fine.py")
	require.NoError(t, err)
	assert.False(t, res.HasSyntaxErrors)
}

// nestedIfs builds a function with levels nested if statements.
func nestedIfs(levels int) string {
	var b strings.Builder
	b.WriteString("def deep(x):\n")
	for i := range levels {
		fmt.Fprintf(&b, "%sif x:\n", strings.Repeat("    ", i+1))
	}
	fmt.Fprintf(&b, "%spass\n", strings.Repeat("    ", levels+1))
	return b.String()
}

func TestMaxDepth(t *testing.T) {
	source := nestedIfs(30)

	t.Run("guard trips", func(t *testing.T) {
		e := NewExtractor(WithMaxDepth(20))

		_, err := e.Extract(context.Background(), []byte(source), "deep.py")
		assert.ErrorIs(t, err, ErrMaxDepthExceeded)

		_, err = e.Analyze(context.Background(), source)
		assert.ErrorIs(t, err, ErrMaxDepthExceeded)
	})

	t.Run("default limit", func(t *testing.T) {
		e := NewExtractor()

		elements, err := e.Extract(context.Background(), []byte(source), "deep.py")
		require.NoError(t, err)
		require.Len(t, elements, 1)

		report, err := e.Analyze(context.Background(), source)
		require.NoError(t, err)
		assert.Equal(t, 31, report.NestingDepth)
		assert.Equal(t, 31, report.Cyclomatic)
	})

	t.Run("disabled", func(t *testing.T) {
		e := NewExtractor(WithMaxDepth(0))

		_, err := e.Analyze(context.Background(), source)
		require.NoError(t, err)
	})
}

func TestExtractorLanguage(t *testing.T) {
	e := NewExtractor()
	assert.Equal(t, "python", e.Language())

	e = NewExtractor(WithLanguage(nil), WithLogger(nil))
	assert.Equal(t, "python", e.Language())
}

func TestRegistry(t *testing.T) {
	lang := Get("python")
	require.NotNil(t, lang)
	assert.Equal(t, []string{".py"}, lang.Extensions())

	assert.Equal(t, lang, ByExtension(".py"))
	assert.Nil(t, ByExtension(".rb"))
	assert.Nil(t, Get("cobol"))
}
