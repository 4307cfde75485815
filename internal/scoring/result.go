package scoring

import (
	"encoding/json"
	"fmt"
)

// Result is implemented by the five per-test-type result shapes. A result is
// computed once per submission and persisted verbatim as an opaque JSON blob
// on the assessment record; it is never recomputed in place.
type Result interface {
	ResultType() TestType
}

// ScoredItem is a single question's (or statement's) audit entry inside a
// result breakdown.
type ScoredItem struct {
	ID       string  `json:"id"`
	Category string  `json:"category,omitempty"`
	Profile  string  `json:"profile,omitempty"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
}

// DISCResult holds per-profile totals plus the concatenated codes of the two
// dominant profiles (e.g. "DI").
type DISCResult struct {
	Scores  map[Profile]float64 `json:"scores"`
	Profile string              `json:"profile"`
	Items   []ScoredItem        `json:"items"`
}

func (*DISCResult) ResultType() TestType { return TestTypeDISC }

type SeniorityResult struct {
	Score       float64      `json:"score"`
	MaxScore    float64      `json:"maxScore"`
	Percentage  float64      `json:"percentage"`
	Level       string       `json:"level"`
	Description string       `json:"description,omitempty"`
	Items       []ScoredItem `json:"items"`
}

func (*SeniorityResult) ResultType() TestType { return TestTypeSenioritySeller }

type LeadershipStyleResult struct {
	Score       float64 `json:"score"`
	Style       string  `json:"style"`
	Description string  `json:"description"`
}

func (*LeadershipStyleResult) ResultType() TestType { return TestTypeLeadershipStyle }

type CategoryResult struct {
	Name       string       `json:"name"`
	Score      float64      `json:"score"`
	MaxScore   float64      `json:"maxScore"`
	Percentage float64      `json:"percentage"`
	Items      []ScoredItem `json:"items"`
}

type DEFMethodResult struct {
	Categories       []CategoryResult `json:"categories"`
	GlobalScore      float64          `json:"globalScore"`
	GlobalMaxScore   float64          `json:"globalMaxScore"`
	GlobalPercentage float64          `json:"globalPercentage"`
}

func (*DEFMethodResult) ResultType() TestType { return TestTypeDEFMethod }

// ValueItem is the per-question breakdown entry of a Values-8D result. No
// max score is carried; the dimension average is a raw value on whatever
// scale the questions use.
type ValueItem struct {
	ID        string  `json:"id"`
	Dimension string  `json:"dimension"`
	Score     float64 `json:"score"`
}

type DimensionResult struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type Values8DResult struct {
	Dimensions []DimensionResult `json:"dimensions"`
	Items      []ValueItem       `json:"items"`
}

func (*Values8DResult) ResultType() TestType { return TestTypeValues8D }

// DecodeResult parses a persisted result blob back into its typed shape.
// Unknown test types yield (nil, nil), mirroring CalculateResult.
func DecodeResult(testType TestType, data []byte) (Result, error) {
	var result Result
	switch testType {
	case TestTypeDISC:
		result = &DISCResult{}
	case TestTypeSenioritySeller:
		result = &SeniorityResult{}
	case TestTypeLeadershipStyle:
		result = &LeadershipStyleResult{}
	case TestTypeDEFMethod:
		result = &DEFMethodResult{}
	case TestTypeValues8D:
		result = &Values8DResult{}
	default:
		return nil, nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", testType, err)
	}
	return result, nil
}
