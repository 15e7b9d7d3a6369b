package docgen

import "github.com/v-bommidi/ai-doc-generator/types"

// Quality is a categorical documentation quality rating.
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
	QualityMissing   Quality = "missing"
)

// QualityMetrics scores documentation along four axes, each in [0, 1].
type QualityMetrics struct {
	Accuracy     float64 `json:"accuracy_score" validate:"gte=0,lte=1"`
	Completeness float64 `json:"completeness_score" validate:"gte=0,lte=1"`
	Clarity      float64 `json:"clarity_score" validate:"gte=0,lte=1"`
	Consistency  float64 `json:"consistency_score" validate:"gte=0,lte=1"`
}

// Validate checks every score is within [0, 1].
func (m QualityMetrics) Validate() error {
	return types.Validator().Struct(m)
}

// Overall is the weighted score: accuracy 35%, completeness 30%,
// clarity 25%, consistency 10%.
func (m QualityMetrics) Overall() float64 {
	return m.Accuracy*0.35 +
		m.Completeness*0.30 +
		m.Clarity*0.25 +
		m.Consistency*0.10
}

// Quality maps the overall score onto a rating.
func (m QualityMetrics) Quality() Quality {
	return QualityFor(m.Overall())
}

// QualityFor maps a score onto its rating band.
func QualityFor(score float64) Quality {
	switch {
	case score >= 0.9:
		return QualityExcellent
	case score >= 0.75:
		return QualityGood
	case score >= 0.6:
		return QualityFair
	case score >= 0.4:
		return QualityPoor
	default:
		return QualityMissing
	}
}
