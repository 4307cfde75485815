package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentStatus string

const (
	AssessmentPending   AssessmentStatus = "pending"
	AssessmentCompleted AssessmentStatus = "completed"
	AssessmentArchived  AssessmentStatus = "archived"
)

// Assessment is one respondent's run of a test within a workspace. Answers
// arrive as a flat question-id to value map; Result is the scoring
// calculator's output persisted verbatim, write-once.
type Assessment struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	WorkspaceID string           `json:"workspace_id" gorm:"not null;size:255;index:idx_assessments_workspace" validate:"required"`
	TestType    string           `json:"test_type" gorm:"not null;size:50;index" validate:"required,test_type"`
	StructureID uint             `json:"structure_id" gorm:"not null;index"`
	Respondent  string           `json:"respondent_id" gorm:"column:respondent_id;not null;size:255;index" validate:"required"`
	Status      AssessmentStatus `json:"status" gorm:"default:pending;index" validate:"omitempty,oneof=pending completed archived"`

	Answers datatypes.JSON `json:"answers" gorm:"type:jsonb"`
	Result  datatypes.JSON `json:"result" gorm:"type:jsonb"`

	CompletedAt *time.Time     `json:"completed_at"`
	CreatedBy   string         `json:"created_by" gorm:"not null;size:255"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Structure TestStructure `json:"structure" gorm:"foreignKey:StructureID"`
}

func (Assessment) TableName() string {
	return "assessments"
}
