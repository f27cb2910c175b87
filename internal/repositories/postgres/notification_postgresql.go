package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// NotificationPostgreSQL implements the NotificationRepository interface
type NotificationPostgreSQL struct {
	db *gorm.DB
}

// NewNotificationPostgreSQL creates a new notification repository instance
func NewNotificationPostgreSQL(db *gorm.DB) repositories.NotificationRepository {
	return &NotificationPostgreSQL{db: db}
}

func (nr *NotificationPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return nr.db
}

func (nr *NotificationPostgreSQL) Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error {
	db := nr.getDB(tx)
	if err := db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (nr *NotificationPostgreSQL) CreateBatch(ctx context.Context, tx *gorm.DB, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	db := nr.getDB(tx)
	if err := db.WithContext(ctx).CreateInBatches(notifications, 100).Error; err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	return nil
}

func (nr *NotificationPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Notification, error) {
	db := nr.getDB(tx)
	var notification models.Notification
	if err := db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (nr *NotificationPostgreSQL) GetByUser(ctx context.Context, tx *gorm.DB, userID uint, filters repositories.NotificationFilters) ([]*models.Notification, error) {
	db := nr.getDB(tx)
	query := db.WithContext(ctx).Where("user_id = ?", userID)

	if filters.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var notifications []*models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, nil
}

func (nr *NotificationPostgreSQL) CountUnread(ctx context.Context, tx *gorm.DB, userID uint) (int64, error) {
	db := nr.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead scopes the update by user id so one user cannot acknowledge
// another user's notification.
func (nr *NotificationPostgreSQL) MarkRead(ctx context.Context, tx *gorm.DB, id, userID uint) error {
	db := nr.getDB(tx)
	now := time.Now()
	result := db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (nr *NotificationPostgreSQL) MarkAllRead(ctx context.Context, tx *gorm.DB, userID uint) error {
	db := nr.getDB(tx)
	now := time.Now()
	err := db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
