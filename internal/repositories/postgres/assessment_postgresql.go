package postgres

import (
	"context"
	"fmt"

	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{db: db}
}

func (r *AssessmentPostgreSQL) Create(ctx context.Context, assessment *models.Assessment) error {
	if err := r.db.WithContext(ctx).Create(assessment).Error; err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

func (r *AssessmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := r.db.WithContext(ctx).First(&assessment, id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *AssessmentPostgreSQL) GetByIDWithStructure(ctx context.Context, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.db.WithContext(ctx).
		Preload("Structure").
		First(&assessment, id).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *AssessmentPostgreSQL) Update(ctx context.Context, assessment *models.Assessment) error {
	if err := r.db.WithContext(ctx).Save(assessment).Error; err != nil {
		return fmt.Errorf("failed to update assessment: %w", err)
	}
	return nil
}

func (r *AssessmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Assessment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	return nil
}

func (r *AssessmentPostgreSQL) List(ctx context.Context, workspaceID string, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Assessment{}).
		Where("workspace_id = ?", workspaceID)
	query = r.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assessments: %w", err)
	}

	query = applySorting(query, filters.SortBy, filters.SortOrder, "created_at")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var assessments []*models.Assessment
	if err := query.Find(&assessments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, total, nil
}

func (r *AssessmentPostgreSQL) GetByRespondent(ctx context.Context, workspaceID, respondentID string, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	respondent := respondentID
	filters.Respondent = &respondent
	return r.List(ctx, workspaceID, filters)
}

func (r *AssessmentPostgreSQL) GetStats(ctx context.Context, workspaceID string) (*repositories.AssessmentStats, error) {
	stats := &repositories.AssessmentStats{
		ByTestType: make(map[string]int),
	}

	type statusCount struct {
		Status string
		Count  int
	}
	var byStatus []statusCount
	err := r.db.WithContext(ctx).Model(&models.Assessment{}).
		Select("status, COUNT(*) as count").
		Where("workspace_id = ?", workspaceID).
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate assessment statuses: %w", err)
	}

	for _, sc := range byStatus {
		stats.TotalAssessments += sc.Count
		switch models.AssessmentStatus(sc.Status) {
		case models.AssessmentCompleted:
			stats.CompletedAssessments += sc.Count
		case models.AssessmentPending:
			stats.PendingAssessments += sc.Count
		}
	}

	type typeCount struct {
		TestType string
		Count    int
	}
	var byType []typeCount
	err = r.db.WithContext(ctx).Model(&models.Assessment{}).
		Select("test_type, COUNT(*) as count").
		Where("workspace_id = ?", workspaceID).
		Group("test_type").
		Scan(&byType).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate assessment test types: %w", err)
	}
	for _, tc := range byType {
		stats.ByTestType[tc.TestType] = tc.Count
	}

	return stats, nil
}

func (r *AssessmentPostgreSQL) applyFilters(query *gorm.DB, filters repositories.AssessmentFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.TestType != nil {
		query = query.Where("test_type = ?", *filters.TestType)
	}
	if filters.Respondent != nil {
		query = query.Where("respondent_id = ?", *filters.Respondent)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}
