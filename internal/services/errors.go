package services

import (
	"errors"
	"fmt"

	apperrors "github.com/sales-cockpit/assessment-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Structure specific errors
	ErrStructureNotFound      = errors.New("test structure not found")
	ErrStructureAccessDenied  = errors.New("access denied to test structure")
	ErrStructureNotDeletable  = errors.New("active test structure cannot be deleted")
	ErrNoActiveStructure      = errors.New("no active test structure for this test type")
	ErrStructureInvalidType   = errors.New("unknown test type")
	ErrStructureAlreadyActive = errors.New("test structure is already active")

	// Assessment specific errors
	ErrAssessmentNotFound         = errors.New("assessment not found")
	ErrAssessmentAccessDenied     = errors.New("access denied to assessment")
	ErrAssessmentAlreadyCompleted = errors.New("assessment has already been completed")
	ErrAssessmentNotCompleted     = errors.New("assessment has no submitted answers yet")
	ErrAssessmentArchived         = errors.New("assessment is archived")
	ErrEmptyAnswers               = errors.New("submission contains no answers")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// User/Permission errors
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidRole             = errors.New("invalid user role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStructureNotFound) ||
		errors.Is(err, ErrNoActiveStructure) ||
		errors.Is(err, ErrAssessmentNotFound) ||
		errors.Is(err, ErrNotificationNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrStructureAccessDenied) ||
		errors.Is(err, ErrAssessmentAccessDenied) ||
		errors.Is(err, ErrInsufficientPermissions) {
		return true
	}
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrEmptyAnswers) ||
		errors.Is(err, ErrStructureInvalidType) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrStructureNotDeletable) ||
		errors.Is(err, ErrStructureAlreadyActive) ||
		errors.Is(err, ErrAssessmentAlreadyCompleted)
}
