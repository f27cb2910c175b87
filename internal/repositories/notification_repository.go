package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository interface for notification operations
type NotificationRepository interface {
	// Basic operations
	Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error
	CreateBatch(ctx context.Context, tx *gorm.DB, notifications []*models.Notification) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Notification, error)

	// Query operations
	GetByUser(ctx context.Context, tx *gorm.DB, userID uint, filters NotificationFilters) ([]*models.Notification, error)
	CountUnread(ctx context.Context, tx *gorm.DB, userID uint) (int64, error)

	// State changes
	MarkRead(ctx context.Context, tx *gorm.DB, id, userID uint) error
	MarkAllRead(ctx context.Context, tx *gorm.DB, userID uint) error
}
