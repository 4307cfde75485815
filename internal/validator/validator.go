package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/sales-cockpit/assessment-service/internal/errors"
	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/scoring"
)

// Validator combines struct-tag validation with the structure-document
// validator used by admin tooling.
type Validator struct {
	structValidator    *validator.Validate
	structureValidator *StructureValidator
}

// New creates the centralized validator instance.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:    structValidator,
		structureValidator: NewStructureValidator(),
	}
}

// ValidateStruct validates struct tags and translates failures into the
// shared field-level taxonomy, so handlers render {field, message} pairs.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.structValidator.Struct(s)
	if err == nil {
		return nil
	}
	if fieldErrs := apperrors.ToValidationErrors(err); len(fieldErrs) > 0 {
		return fieldErrs
	}
	return err
}

// Structure returns the structure-document validator.
func (v *Validator) Structure() *StructureValidator {
	return v.structureValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("test_type", validateTestType)
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("assessment_status", validateAssessmentStatus)

	// Report json field names in validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateTestType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, known := range scoring.KnownTestTypes() {
		if string(known) == value {
			return true
		}
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleSeller,
		models.RoleManager,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}

func validateAssessmentStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.AssessmentStatus{
		models.AssessmentPending,
		models.AssessmentCompleted,
		models.AssessmentArchived,
	}

	value := fl.Field().String()
	for _, validStatus := range validStatuses {
		if string(validStatus) == value {
			return true
		}
	}
	return false
}
