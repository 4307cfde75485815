package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"gorm.io/gorm"
)

type NotificationPostgreSQL struct {
	db *gorm.DB
}

func NewNotificationPostgreSQL(db *gorm.DB) repositories.NotificationRepository {
	return &NotificationPostgreSQL{db: db}
}

func (r *NotificationPostgreSQL) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByRecipient returns the recipient's feed, newest first. Rows without a
// recipient are workspace-wide broadcasts and belong to every feed.
func (r *NotificationPostgreSQL) ListByRecipient(ctx context.Context, workspaceID, recipientID string, limit, offset int) ([]*models.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("workspace_id = ?", workspaceID).
		Where("recipient_id = ? OR recipient_id IS NULL", recipientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var notifications []*models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkRead only touches the caller's own rows; a foreign or unknown id
// reads as not found.
func (r *NotificationPostgreSQL) MarkRead(ctx context.Context, id uint, recipientID string) error {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read_at", time.Now())
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
