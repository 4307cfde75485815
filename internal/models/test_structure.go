package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sales-cockpit/assessment-service/internal/scoring"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestStructure is a versioned, admin-authored assessment definition. The
// Definition column holds the scoring document (categories, questions,
// scales) as an opaque jsonb blob; the scoring package owns its shape.
//
// At most one structure is active per test type at a time. The repository
// enforces this transactionally on activation.
type TestStructure struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	TestType   string         `json:"test_type" gorm:"not null;size:50;index:idx_test_structures_type" validate:"required,test_type"`
	Name       string         `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Version    int            `json:"version" gorm:"default:1"`
	IsActive   bool           `json:"is_active" gorm:"default:false;index"`
	Definition datatypes.JSON `json:"definition" gorm:"type:jsonb;not null" validate:"required"`

	CreatedBy string         `json:"created_by" gorm:"not null;size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (TestStructure) TableName() string {
	return "test_structures"
}

// Decode parses the stored definition into the scoring document.
func (s *TestStructure) Decode() (*scoring.TestStructure, error) {
	var doc scoring.TestStructure
	if err := json.Unmarshal(s.Definition, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode structure %d definition: %w", s.ID, err)
	}
	return &doc, nil
}
