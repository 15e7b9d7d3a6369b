// Package docgen turns extracted elements into structured documentation,
// either through a language model or a deterministic mock.
package docgen

import (
	"slices"
	"time"

	"github.com/v-bommidi/ai-doc-generator/types"
)

// LanguageCode is an ISO 639-1 code of a documentation language.
type LanguageCode string

const (
	English  LanguageCode = "en"
	Spanish  LanguageCode = "es"
	Chinese  LanguageCode = "zh"
	French   LanguageCode = "fr"
	German   LanguageCode = "de"
	Japanese LanguageCode = "ja"
	Hindi    LanguageCode = "hi"
	Arabic   LanguageCode = "ar"
)

// Languages returns every supported documentation language.
func Languages() []LanguageCode {
	return []LanguageCode{English, Spanish, Chinese, French, German, Japanese, Hindi, Arabic}
}

// Valid reports whether c is a supported language.
func (c LanguageCode) Valid() bool {
	return slices.Contains(Languages(), c)
}

// ParameterDoc documents one parameter.
type ParameterDoc struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"min=5"`
	Default     string `json:"default,omitempty"`
	Required    bool   `json:"required"`
}

// Documentation is generated documentation for one element.
type Documentation struct {
	ElementID           string         `json:"snippet_id" validate:"required"`
	Summary             string         `json:"summary" validate:"min=10,max=500"`
	DetailedDescription string         `json:"detailed_description" validate:"min=20"`
	Parameters          []ParameterDoc `json:"parameters" validate:"dive"`
	Returns             string         `json:"returns,omitempty"`
	Raises              []string       `json:"raises"`
	Examples            []string       `json:"examples"`
	Complexity          string         `json:"complexity,omitempty"`
	Notes               []string       `json:"notes"`

	Language    LanguageCode `json:"language" validate:"required,oneof=en es zh fr de ja hi ar"`
	Model       string       `json:"model_used" validate:"required"`
	Confidence  float64      `json:"confidence_score" validate:"gte=0,lte=1"`
	GeneratedAt time.Time    `json:"generated_at"`
	TokensUsed  int          `json:"tokens_used,omitempty" validate:"gte=0"`
}

// Validate checks d against the documentation constraints.
func (d *Documentation) Validate() error {
	return types.Validator().Struct(d)
}

// Clone returns a copy of d that shares no slices with it.
func (d *Documentation) Clone() *Documentation {
	cp := *d
	cp.Parameters = slices.Clone(d.Parameters)
	cp.Raises = slices.Clone(d.Raises)
	cp.Examples = slices.Clone(d.Examples)
	cp.Notes = slices.Clone(d.Notes)
	return &cp
}

// normalize replaces nil lists with empty ones so JSON output is stable.
func (d *Documentation) normalize() {
	if d.Parameters == nil {
		d.Parameters = []ParameterDoc{}
	}
	if d.Raises == nil {
		d.Raises = []string{}
	}
	if d.Examples == nil {
		d.Examples = []string{}
	}
	if d.Notes == nil {
		d.Notes = []string{}
	}
	if d.Language == "" {
		d.Language = English
	}
}
