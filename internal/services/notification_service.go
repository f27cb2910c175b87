package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type notificationService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewNotificationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, publisher events.EventPublisher) NotificationService {
	return &notificationService{
		repo:      repo,
		db:        db,
		logger:    logger,
		publisher: publisher,
	}
}

// ===== QUERIES =====

func (s *notificationService) List(ctx context.Context, userID uint, filters repositories.NotificationFilters) (*NotificationListResponse, error) {
	notifications, err := s.repo.Notification().GetByUser(ctx, s.db, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.repo.Notification().CountUnread(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// ===== STATE CHANGES =====

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID uint) error {
	err := s.repo.Notification().MarkRead(ctx, s.db, notificationID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) error {
	if err := s.repo.Notification().MarkAllRead(ctx, s.db, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// ===== FAN-OUT =====

// NotifyUsers persists one notification per recipient and publishes a bus
// event for downstream delivery (email, push). Event publish failure does not
// roll back the stored notifications.
func (s *notificationService) NotifyUsers(ctx context.Context, userIDs []uint, notifType models.NotificationType, title, message string, data map[string]interface{}) error {
	if len(userIDs) == 0 {
		return nil
	}

	var payload datatypes.JSON
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}
		payload = datatypes.JSON(raw)
	}

	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, &models.Notification{
			UserID:  userID,
			Type:    notifType,
			Title:   title,
			Message: message,
			Data:    payload,
		})
	}

	if err := s.repo.Notification().CreateBatch(ctx, s.db, notifications); err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}

	event := events.NewEvent(events.EventBulkNotification, events.BulkNotificationEvent{
		UserIDs: userIDs,
		Type:    string(notifType),
		Title:   title,
		Message: message,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish notification event", "type", notifType, "error", err)
	}

	s.logger.Info("Notifications created", "type", notifType, "recipients", len(userIDs))
	return nil
}
