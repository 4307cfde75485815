package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sales-cockpit/assessment-service/internal/repositories"
)

type notificationService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewNotificationService(repo repositories.Repository, logger *slog.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		logger: logger,
	}
}

// List returns the caller's own feed; broadcasts in the workspace are
// included by the repository query.
func (s *notificationService) List(ctx context.Context, workspaceID, userID string, limit, offset int) (*NotificationListResponse, error) {
	notifications, total, err := s.repo.Notification().ListByRecipient(ctx, workspaceID, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return &NotificationListResponse{
		Notifications: notifications,
		Total:         total,
	}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uint, userID string) error {
	if err := s.repo.Notification().MarkRead(ctx, id, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	s.logger.Debug("Notification marked read", "notification_id", id, "user_id", userID)
	return nil
}
