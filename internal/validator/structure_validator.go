package validator

import (
	"fmt"

	apperrors "github.com/sales-cockpit/assessment-service/internal/errors"
	"github.com/sales-cockpit/assessment-service/internal/scoring"
)

// StructureValidator checks a structure document before it can be saved or
// activated. Activation is the last gate: a document that passes here will
// never trip the calculator's unresolvable-scale error at submission time.
type StructureValidator struct{}

func NewStructureValidator() *StructureValidator {
	return &StructureValidator{}
}

// Validate checks the document for the test type it claims to define.
func (sv *StructureValidator) Validate(testType string, doc *scoring.TestStructure) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if doc == nil {
		errs = append(errs, *apperrors.NewValidationError("definition", "is required", nil))
		return errs
	}

	if len(doc.Categories) == 0 {
		errs = append(errs, *apperrors.NewValidationError("categories", "must contain at least one category", nil))
	}

	seen := make(map[string]bool)
	for ci, cat := range doc.Categories {
		if cat.Name == "" {
			errs = append(errs, *apperrors.NewValidationError(
				fmt.Sprintf("categories[%d].name", ci), "is required", nil))
		}
		for qi := range cat.Questions {
			q := &doc.Categories[ci].Questions[qi]
			field := fmt.Sprintf("categories[%d].questions[%d]", ci, qi)

			if q.ID == "" {
				errs = append(errs, *apperrors.NewValidationError(field+".id", "is required", nil))
				continue
			}
			if seen[q.ID] {
				errs = append(errs, *apperrors.NewValidationError(field+".id", "is duplicated", q.ID))
			}
			seen[q.ID] = true

			if _, err := scoring.MaxScore(q, doc.Scoring); err != nil {
				errs = append(errs, *apperrors.NewValidationErrorWithRule(
					field, "has no usable scale (scale_descriptors, matrix_config, options or a structure-level scoring scale is required)", "usable_scale", q.ID))
			}

			if q.MatrixConfig != nil && testType == string(scoring.TestTypeDISC) {
				for si, st := range q.MatrixConfig.Statements {
					if st.Metadata.Profile == "" {
						errs = append(errs, *apperrors.NewValidationError(
							fmt.Sprintf("%s.matrix_config.statements[%d].metadata.profile", field, si),
							"is required for behavioral profile tests", st.ID))
					}
				}
			}
		}
	}

	errs = append(errs, sv.validateBands(doc)...)
	return errs
}

// validateBands checks that score bands are internally coherent. Band order
// matters at scoring time (first match wins), so descending or overlapping
// bands are author errors.
func (sv *StructureValidator) validateBands(doc *scoring.TestStructure) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	for i, band := range doc.SeniorityLevels {
		field := fmt.Sprintf("seniority_levels[%d]", i)
		if band.Label == "" {
			errs = append(errs, *apperrors.NewValidationError(field+".label", "is required", nil))
		}
		if band.MaxScore < band.MinScore {
			errs = append(errs, *apperrors.NewValidationError(field, "max_score must not be below min_score", nil))
		}
	}

	for i, band := range doc.Results {
		field := fmt.Sprintf("results[%d]", i)
		if band.Style == "" {
			errs = append(errs, *apperrors.NewValidationError(field+".style", "is required", nil))
		}
		if band.Range.Max < band.Range.Min {
			errs = append(errs, *apperrors.NewValidationError(field+".range", "max must not be below min", nil))
		}
	}

	return errs
}
