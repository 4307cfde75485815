package postgres

import (
	"context"

	"github.com/sales-cockpit/assessment-service/internal/cache"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	db    *gorm.DB
	cache cache.CacheService

	structures    repositories.TestStructureRepository
	assessments   repositories.AssessmentRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

// NewRepository wires the per-entity PostgreSQL repositories behind the
// aggregate Repository handle.
func NewRepository(db *gorm.DB, cacheService cache.CacheService) repositories.Repository {
	return &gormRepository{
		db:            db,
		cache:         cacheService,
		structures:    NewTestStructurePostgreSQL(db, cacheService),
		assessments:   NewAssessmentPostgreSQL(db),
		users:         NewUserPostgreSQL(db),
		notifications: NewNotificationPostgreSQL(db),
	}
}

func (r *gormRepository) TestStructure() repositories.TestStructureRepository { return r.structures }
func (r *gormRepository) Assessment() repositories.AssessmentRepository      { return r.assessments }
func (r *gormRepository) User() repositories.UserRepository                  { return r.users }
func (r *gormRepository) Notification() repositories.NotificationRepository  { return r.notifications }

func (r *gormRepository) WithTx(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx, r.cache))
	})
}
