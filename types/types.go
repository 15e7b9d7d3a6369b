// Package types defines shared data types for the documentation generator.
package types

// Kind is the category of a documentable element.
type Kind string

const (
	KindFunction Kind = "function"
	KindClass    Kind = "class"
	KindMethod   Kind = "method"
	KindModule   Kind = "module"
)

// Kinds returns every element kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindFunction, KindClass, KindMethod, KindModule}
}

// Element is a unit of source code worth documenting.
type Element struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	Source    string `json:"source" validate:"required,notblank"`
	Kind      Kind   `json:"kind" validate:"required,oneof=function class method module"`
	Language  string `json:"language" validate:"required"`
	FilePath  string `json:"file_path,omitempty"`
	LineStart int    `json:"line_start" validate:"gte=1"`
	LineEnd   int    `json:"line_end" validate:"gte=1,gtefield=LineStart"`
	StartByte int    `json:"start_byte"`
	EndByte   int    `json:"end_byte" validate:"gtefield=StartByte"`
}

// Rating is a categorical complexity tag derived from cyclomatic complexity.
type Rating string

const (
	RatingSimple      Rating = "simple"
	RatingModerate    Rating = "moderate"
	RatingComplex     Rating = "complex"
	RatingVeryComplex Rating = "very complex"
)

// RatingFor maps a cyclomatic complexity onto its rating band.
func RatingFor(cyclomatic int) Rating {
	switch {
	case cyclomatic <= 5:
		return RatingSimple
	case cyclomatic <= 10:
		return RatingModerate
	case cyclomatic <= 20:
		return RatingComplex
	default:
		return RatingVeryComplex
	}
}

// ComplexityReport holds complexity metrics for a code fragment.
type ComplexityReport struct {
	Lines        int    `json:"lines"`
	Cyclomatic   int    `json:"cyclomatic_complexity"`
	NestingDepth int    `json:"nesting_depth"`
	Parameters   int    `json:"num_parameters"`
	Rating       Rating `json:"complexity_rating"`
}

// FileJob represents a file to be processed.
type FileJob struct {
	AbsPath     string
	DisplayPath string
}
