package scoring

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TestType identifies one of the assessment archetypes the calculator knows
// how to score.
type TestType string

const (
	TestTypeDISC            TestType = "disc"
	TestTypeSenioritySeller TestType = "seniority_seller"
	TestTypeLeadershipStyle TestType = "leadership_style"
	TestTypeDEFMethod       TestType = "def_method"
	TestTypeValues8D        TestType = "values_8d"
)

// KnownTestTypes returns every test type with a scoring rule defined.
func KnownTestTypes() []TestType {
	return []TestType{
		TestTypeDISC,
		TestTypeSenioritySeller,
		TestTypeLeadershipStyle,
		TestTypeDEFMethod,
		TestTypeValues8D,
	}
}

// Answers maps a question id (or the composite questionId_statementId form
// for matrix questions) to the raw numeric response submitted by the
// respondent. Answers are never mutated by the calculator; a missing entry
// counts as zero.
type Answers map[string]float64

// TestStructure is the admin-authored, versioned definition of an
// assessment: its categories, questions and scoring rules. It is read-only
// for the calculator.
type TestStructure struct {
	Categories      []Category       `json:"categories"`
	Scoring         *ScoringConfig   `json:"scoring,omitempty"`
	SeniorityLevels []SeniorityLevel `json:"seniority_levels,omitempty"`
	Results         []ResultBand     `json:"results,omitempty"`
}

// Category groups questions. Order is significant for category-based results
// (DEF method, Values-8D).
type Category struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Question is a single scoring unit. Exactly one of the scale-shape fields
// is expected to be populated; when none is, the structure-level scoring
// scale applies.
type Question struct {
	ID               string            `json:"id"`
	Text             string            `json:"text,omitempty"`
	ScaleDescriptors []ScaleDescriptor `json:"scale_descriptors,omitempty"`
	MatrixConfig     *MatrixConfig     `json:"matrix_config,omitempty"`
	Options          []Option          `json:"options,omitempty"`
}

type ScaleDescriptor struct {
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
}

// MatrixConfig describes a matrix-rating question: many statements rated on
// a shared scale, each statement tagged with a behavioral profile.
type MatrixConfig struct {
	Scale      Scale       `json:"scale"`
	Statements []Statement `json:"statements"`
}

type Statement struct {
	ID       string            `json:"id"`
	Text     string            `json:"text,omitempty"`
	Metadata StatementMetadata `json:"metadata"`
}

type StatementMetadata struct {
	Profile string `json:"profile"`
}

type Scale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Option struct {
	Value FlexNumber `json:"value"`
	Label string     `json:"label,omitempty"`
}

// ScoringConfig is the structure-level fallback scale for questions that
// carry no scale of their own.
type ScoringConfig struct {
	Scale *Scale `json:"scale,omitempty"`
}

// SeniorityLevel is an inclusive absolute-score band mapped to a label.
type SeniorityLevel struct {
	MinScore    float64 `json:"min_score"`
	MaxScore    float64 `json:"max_score"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
}

// ResultBand is an inclusive score band mapped to a leadership style.
type ResultBand struct {
	Range       Scale  `json:"range"`
	Style       string `json:"style"`
	Description string `json:"description,omitempty"`
}

// FlexNumber tolerates option values stored either as JSON numbers or as
// numeric strings, which older admin tooling produced interchangeably.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*n = 0
			return nil
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("option value %q is not numeric: %w", raw, err)
		}
		*n = FlexNumber(value)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*n = FlexNumber(value)
	return nil
}
