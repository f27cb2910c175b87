package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"gorm.io/gorm"
)

func TestNotificationService_NotifyUsers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockPublisher := events.NewMockEventPublisher(logger)

	var stored []*models.Notification
	repo := &mockRepository{
		notification: mockNotificationRepo{
			CreateBatchFn: func(ctx context.Context, tx *gorm.DB, notifications []*models.Notification) error {
				stored = notifications
				return nil
			},
		},
	}

	service := NewNotificationService(repo, nil, logger, mockPublisher)
	ctx := context.Background()

	t.Run("FanOut", func(t *testing.T) {
		userIDs := []uint{1, 2, 3}
		err := service.NotifyUsers(ctx, userIDs, models.NotificationNewContent,
			"New content available", "Lesson 4 was added", map[string]interface{}{"course_id": uint(7)})
		if err != nil {
			t.Fatalf("Failed to notify users: %v", err)
		}

		if len(stored) != 3 {
			t.Fatalf("Expected 3 stored notifications, got %d", len(stored))
		}
		for i, n := range stored {
			if n.UserID != userIDs[i] {
				t.Errorf("Notification %d has user_id %d, want %d", i, n.UserID, userIDs[i])
			}
			if n.Type != models.NotificationNewContent {
				t.Errorf("Notification %d has type %s, want %s", i, n.Type, models.NotificationNewContent)
			}
			if n.IsRead {
				t.Errorf("Notification %d should start unread", i)
			}
		}

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 published event, got %d", len(published))
		}
		if published[0].Type != events.EventBulkNotification {
			t.Errorf("Expected event type %q, got %q", events.EventBulkNotification, published[0].Type)
		}
	})

	t.Run("EventEnvelope", func(t *testing.T) {
		mockPublisher.ClearEvents()

		err := service.NotifyUsers(ctx, []uint{42}, models.NotificationGradePosted,
			"Grade posted", "You scored 90 out of 100 points", nil)
		if err != nil {
			t.Fatalf("Failed to notify users: %v", err)
		}

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 published event, got %d", len(published))
		}

		event := published[0]
		if event.ID == "" {
			t.Error("Event ID should not be empty")
		}
		if event.Source != "course-service" {
			t.Errorf("Expected source 'course-service', got %q", event.Source)
		}
		if event.Version != "1.0" {
			t.Errorf("Expected version '1.0', got %q", event.Version)
		}
		if event.Timestamp.IsZero() {
			t.Error("Event timestamp should not be zero")
		}
	})

	t.Run("NoRecipients", func(t *testing.T) {
		mockPublisher.ClearEvents()
		stored = nil

		if err := service.NotifyUsers(ctx, nil, models.NotificationForumPost, "t", "m", nil); err != nil {
			t.Fatalf("Empty recipient list should be a no-op, got %v", err)
		}
		if len(stored) != 0 {
			t.Errorf("Expected no stored notifications, got %d", len(stored))
		}
		if len(mockPublisher.GetPublishedEvents()) != 0 {
			t.Error("Expected no published events for empty recipient list")
		}
	})
}

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := &mockRepository{
		notification: mockNotificationRepo{
			MarkReadFn: func(ctx context.Context, tx *gorm.DB, id, userID uint) error {
				return gorm.ErrRecordNotFound
			},
		},
	}

	service := NewNotificationService(repo, nil, logger, events.NewMockEventPublisher(logger))

	err := service.MarkRead(context.Background(), 99, 1)
	if err != ErrNotificationNotFound {
		t.Errorf("Expected ErrNotificationNotFound, got %v", err)
	}
}

func TestNotificationService_List(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := &mockRepository{
		notification: mockNotificationRepo{
			GetByUserFn: func(ctx context.Context, tx *gorm.DB, userID uint, filters repositories.NotificationFilters) ([]*models.Notification, error) {
				return []*models.Notification{
					{ID: 1, UserID: userID, IsRead: false},
					{ID: 2, UserID: userID, IsRead: true},
				}, nil
			},
			CountUnreadFn: func(ctx context.Context, tx *gorm.DB, userID uint) (int64, error) {
				return 1, nil
			},
		},
	}

	service := NewNotificationService(repo, nil, logger, events.NewMockEventPublisher(logger))

	resp, err := service.List(context.Background(), 5, repositories.NotificationFilters{Limit: 20})
	if err != nil {
		t.Fatalf("Failed to list notifications: %v", err)
	}
	if len(resp.Notifications) != 2 {
		t.Errorf("Expected 2 notifications, got %d", len(resp.Notifications))
	}
	if resp.UnreadCount != 1 {
		t.Errorf("Expected unread count 1, got %d", resp.UnreadCount)
	}
}

// Integration test example (would require actual Kafka)
func TestNotificationService_KafkaIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	// Requires a running Kafka instance; testcontainers-go can provide one.
	t.Skip("Kafka integration requires external broker")
}

// Benchmark test
func BenchmarkNotificationService_NotifyUsers(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := &mockRepository{}
	service := NewNotificationService(repo, nil, logger, events.NewMockEventPublisher(logger))

	ctx := context.Background()
	userIDs := []uint{1, 2, 3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		err := service.NotifyUsers(ctx, userIDs, models.NotificationNewContent, "Benchmark", "Benchmark message", nil)
		if err != nil {
			b.Fatalf("Failed to notify users: %v", err)
		}
	}
}
