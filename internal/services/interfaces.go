package services

import (
	"context"
	"time"

	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"github.com/sales-cockpit/assessment-service/internal/scoring"
)

// ===== STRUCTURE SERVICE =====

// StructureService manages versioned test structure documents.
type StructureService interface {
	Create(ctx context.Context, req *CreateStructureRequest, creatorID string) (*StructureResponse, error)
	GetByID(ctx context.Context, id uint) (*StructureResponse, error)
	GetActive(ctx context.Context, testType string) (*StructureResponse, error)
	List(ctx context.Context, filters repositories.StructureFilters) (*StructureListResponse, error)
	Update(ctx context.Context, id uint, req *UpdateStructureRequest, userID string) (*StructureResponse, error)
	Delete(ctx context.Context, id uint, userID string) error

	// Activate makes the structure the single active version of its test
	// type and emits a structure.activated event.
	Activate(ctx context.Context, id uint, userID string) error
	Deactivate(ctx context.Context, id uint, userID string) error
}

type CreateStructureRequest struct {
	TestType   string                 `json:"test_type" validate:"required,test_type"`
	Name       string                 `json:"name" validate:"required,min=1,max=200"`
	Definition *scoring.TestStructure `json:"definition" validate:"required"`
	Activate   bool                   `json:"activate"`
}

type UpdateStructureRequest struct {
	Name       *string                `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Definition *scoring.TestStructure `json:"definition,omitempty"`
}

type StructureResponse struct {
	ID         uint                   `json:"id"`
	TestType   string                 `json:"test_type"`
	Name       string                 `json:"name"`
	Version    int                    `json:"version"`
	IsActive   bool                   `json:"is_active"`
	Definition *scoring.TestStructure `json:"definition,omitempty"`
	CreatedBy  string                 `json:"created_by"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

type StructureListResponse struct {
	Structures []*StructureResponse `json:"structures"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Size       int                  `json:"size"`
}

// ===== ASSESSMENT SERVICE =====

// AssessmentService owns the assessment lifecycle: creation against the
// active structure, answer submission with scoring, and rescoring.
type AssessmentService interface {
	Create(ctx context.Context, req *CreateAssessmentRequest, creatorID string) (*AssessmentResponse, error)
	GetByID(ctx context.Context, id uint, userID string) (*AssessmentResponse, error)
	List(ctx context.Context, workspaceID string, filters repositories.AssessmentFilters, userID string) (*AssessmentListResponse, error)
	GetByRespondent(ctx context.Context, workspaceID, respondentID string, filters repositories.AssessmentFilters, userID string) (*AssessmentListResponse, error)
	Delete(ctx context.Context, id uint, userID string) error

	// Submit stores the answers, runs the scoring calculator against the
	// assessment's structure and persists the result.
	Submit(ctx context.Context, id uint, req *SubmitAnswersRequest, userID string) (*AssessmentResponse, error)

	// Rescore recomputes the stored result from the persisted answers,
	// used after a structure correction.
	Rescore(ctx context.Context, id uint, userID string) (*AssessmentResponse, error)

	GetStats(ctx context.Context, workspaceID string, userID string) (*repositories.AssessmentStats, error)
}

type CreateAssessmentRequest struct {
	WorkspaceID  string `json:"workspace_id" validate:"required"`
	TestType     string `json:"test_type" validate:"required,test_type"`
	RespondentID string `json:"respondent_id" validate:"required"`
}

type SubmitAnswersRequest struct {
	Answers scoring.Answers `json:"answers" validate:"required"`
}

type AssessmentResponse struct {
	ID           uint                    `json:"id"`
	WorkspaceID  string                  `json:"workspace_id"`
	TestType     string                  `json:"test_type"`
	StructureID  uint                    `json:"structure_id"`
	RespondentID string                  `json:"respondent_id"`
	Status       models.AssessmentStatus `json:"status"`
	Answers      scoring.Answers         `json:"answers,omitempty"`
	Result       scoring.Result          `json:"result,omitempty"`
	CompletedAt  *time.Time              `json:"completed_at,omitempty"`
	CreatedBy    string                  `json:"created_by"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

type AssessmentListResponse struct {
	Assessments []*AssessmentResponse `json:"assessments"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	Size        int                   `json:"size"`
}

// ===== NOTIFICATION SERVICE =====

// NotificationService serves the in-app feed fed by scored assessments.
type NotificationService interface {
	List(ctx context.Context, workspaceID, userID string, limit, offset int) (*NotificationListResponse, error)
	MarkRead(ctx context.Context, id uint, userID string) error
}

type NotificationListResponse struct {
	Notifications []*models.Notification `json:"notifications"`
	Total         int64                  `json:"total"`
}

// ===== EXPORT SERVICE =====

// ExportService renders workspace assessment results as downloadable files.
type ExportService interface {
	ExportAssessmentsToExcel(ctx context.Context, workspaceID string, filters repositories.AssessmentFilters, userID string) ([]byte, error)
	ExportAssessmentsToCSV(ctx context.Context, workspaceID string, filters repositories.AssessmentFilters, userID string) ([]byte, error)
}
