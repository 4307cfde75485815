package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sales-cockpit/assessment-service/internal/cache"
	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"gorm.io/gorm"
)

const activeStructureTTL = 10 * time.Minute

func activeStructureKey(testType string) string {
	return "test_structures:active:" + testType
}

type TestStructurePostgreSQL struct {
	db    *gorm.DB
	cache cache.CacheService
}

func NewTestStructurePostgreSQL(db *gorm.DB, cacheService cache.CacheService) repositories.TestStructureRepository {
	return &TestStructurePostgreSQL{
		db:    db,
		cache: cacheService,
	}
}

func (r *TestStructurePostgreSQL) Create(ctx context.Context, structure *models.TestStructure) error {
	if err := r.db.WithContext(ctx).Create(structure).Error; err != nil {
		return fmt.Errorf("failed to create test structure: %w", err)
	}
	return nil
}

func (r *TestStructurePostgreSQL) GetByID(ctx context.Context, id uint) (*models.TestStructure, error) {
	var structure models.TestStructure
	if err := r.db.WithContext(ctx).First(&structure, id).Error; err != nil {
		return nil, err
	}
	return &structure, nil
}

// GetActiveByType serves the hot path of every scoring request, so the
// active version is cached. Cache failures degrade to the database read.
func (r *TestStructurePostgreSQL) GetActiveByType(ctx context.Context, testType string) (*models.TestStructure, error) {
	if r.cache != nil {
		var cached models.TestStructure
		// misses and cache failures both fall through to the database
		if err := r.cache.Get(ctx, activeStructureKey(testType), &cached); err == nil {
			return &cached, nil
		}
	}

	var structure models.TestStructure
	err := r.db.WithContext(ctx).
		Where("test_type = ? AND is_active = ?", testType, true).
		First(&structure).Error
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, activeStructureKey(testType), &structure, activeStructureTTL)
	}
	return &structure, nil
}

func (r *TestStructurePostgreSQL) List(ctx context.Context, filters repositories.StructureFilters) ([]*models.TestStructure, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TestStructure{})

	if filters.TestType != nil {
		query = query.Where("test_type = ?", *filters.TestType)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count test structures: %w", err)
	}

	query = applySorting(query, filters.SortBy, filters.SortOrder, "created_at")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var structures []*models.TestStructure
	if err := query.Find(&structures).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list test structures: %w", err)
	}
	return structures, total, nil
}

func (r *TestStructurePostgreSQL) Update(ctx context.Context, structure *models.TestStructure) error {
	if err := r.db.WithContext(ctx).Save(structure).Error; err != nil {
		return fmt.Errorf("failed to update test structure: %w", err)
	}
	r.invalidate(ctx, structure.TestType)
	return nil
}

func (r *TestStructurePostgreSQL) Delete(ctx context.Context, id uint) error {
	structure, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if structure.IsActive {
		return fmt.Errorf("cannot delete active test structure %d", id)
	}
	if err := r.db.WithContext(ctx).Delete(&models.TestStructure{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete test structure: %w", err)
	}
	r.invalidate(ctx, structure.TestType)
	return nil
}

// Activate flips the single-active-per-type invariant atomically: every
// other version of the same test type is deactivated in the same
// transaction.
func (r *TestStructurePostgreSQL) Activate(ctx context.Context, id uint) error {
	var testType string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var structure models.TestStructure
		if err := tx.First(&structure, id).Error; err != nil {
			return err
		}
		testType = structure.TestType

		if err := tx.Model(&models.TestStructure{}).
			Where("test_type = ? AND id <> ?", structure.TestType, id).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate previous versions: %w", err)
		}

		if err := tx.Model(&structure).Update("is_active", true).Error; err != nil {
			return fmt.Errorf("failed to activate test structure: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx, testType)
	return nil
}

func (r *TestStructurePostgreSQL) Deactivate(ctx context.Context, id uint) error {
	structure, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(structure).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate test structure: %w", err)
	}
	r.invalidate(ctx, structure.TestType)
	return nil
}

func (r *TestStructurePostgreSQL) NextVersion(ctx context.Context, testType string) (int, error) {
	var maxVersion int
	err := r.db.WithContext(ctx).Model(&models.TestStructure{}).
		Unscoped(). // soft-deleted versions still reserve their number
		Where("test_type = ?", testType).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, fmt.Errorf("failed to resolve next version for %s: %w", testType, err)
	}
	return maxVersion + 1, nil
}

func (r *TestStructurePostgreSQL) invalidate(ctx context.Context, testType string) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, activeStructureKey(testType))
}
