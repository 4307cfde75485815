package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/sales-cockpit/assessment-service/internal/models"
	"gorm.io/gorm"
)

// IsNotFoundError reports whether err represents a missing row.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Repository aggregates the per-entity repositories behind one handle so
// services depend on a single constructor argument.
type Repository interface {
	TestStructure() TestStructureRepository
	Assessment() AssessmentRepository
	User() UserRepository
	Notification() NotificationRepository

	// WithTx runs fn against a transactional view of the repository; a
	// returned error rolls everything back.
	WithTx(ctx context.Context, fn func(Repository) error) error
}

type TestStructureRepository interface {
	Create(ctx context.Context, structure *models.TestStructure) error
	GetByID(ctx context.Context, id uint) (*models.TestStructure, error)
	GetActiveByType(ctx context.Context, testType string) (*models.TestStructure, error)
	List(ctx context.Context, filters StructureFilters) ([]*models.TestStructure, int64, error)
	Update(ctx context.Context, structure *models.TestStructure) error
	Delete(ctx context.Context, id uint) error

	// Activate marks the structure active and deactivates every other
	// version of the same test type in the same transaction.
	Activate(ctx context.Context, id uint) error
	Deactivate(ctx context.Context, id uint) error

	NextVersion(ctx context.Context, testType string) (int, error)
}

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByID(ctx context.Context, id uint) (*models.Assessment, error)
	GetByIDWithStructure(ctx context.Context, id uint) (*models.Assessment, error)
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, workspaceID string, filters AssessmentFilters) ([]*models.Assessment, int64, error)
	GetByRespondent(ctx context.Context, workspaceID, respondentID string, filters AssessmentFilters) ([]*models.Assessment, int64, error)
	GetStats(ctx context.Context, workspaceID string) (*AssessmentStats, error)
}

// NotificationRepository stores the rows behind the in-app notification
// feed. Rows are written when assessments are scored and read by the feed
// endpoints.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, workspaceID, recipientID string, limit, offset int) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id uint, recipientID string) error
}

// UserRepository is deliberately small: the service reads identity data it
// does not own.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	HasRole(ctx context.Context, id string, role models.UserRole) (bool, error)
}

// ===== SHARED FILTER STRUCTS =====

type StructureFilters struct {
	TestType  *string `json:"test_type"`
	IsActive  *bool   `json:"is_active"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`    // "created_at", "version", "name"
	SortOrder string  `json:"sort_order"` // "asc", "desc"
}

type AssessmentFilters struct {
	Status     *models.AssessmentStatus `json:"status"`
	TestType   *string                  `json:"test_type"`
	Respondent *string                  `json:"respondent_id"`
	DateFrom   *time.Time               `json:"date_from"`
	DateTo     *time.Time               `json:"date_to"`
	Limit      int                      `json:"limit"`
	Offset     int                      `json:"offset"`
	SortBy     string                   `json:"sort_by"`
	SortOrder  string                   `json:"sort_order"`
}

// ===== SHARED STATISTICS STRUCTS =====

type AssessmentStats struct {
	TotalAssessments     int            `json:"total_assessments"`
	CompletedAssessments int            `json:"completed_assessments"`
	PendingAssessments   int            `json:"pending_assessments"`
	ByTestType           map[string]int `json:"by_test_type"`
}
