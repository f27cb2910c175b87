package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"gorm.io/gorm"
)

func newEnrollmentTestService(repo *mockRepository, publisher events.EventPublisher) EnrollmentService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewEnrollmentService(repo, nil, logger, publisher)
}

func publishedCourseRepo() *mockRepository {
	return &mockRepository{
		course: mockCourseRepo{
			GetByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
				return &models.Course{ID: id, TeacherID: 1, Title: "Go Basics", IsPublished: true}, nil
			},
		},
	}
}

func TestEnrollmentService_Enroll(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockPublisher := events.NewMockEventPublisher(logger)

	repo := publishedCourseRepo()
	repo.enrollment.CreateFn = func(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
		enrollment.ID = 42
		return nil
	}

	service := newEnrollmentTestService(repo, mockPublisher)

	enrollment, err := service.Enroll(context.Background(), 10, 7)
	if err != nil {
		t.Fatalf("Failed to enroll: %v", err)
	}

	if enrollment.StudentID != 7 || enrollment.CourseID != 10 {
		t.Errorf("Enrollment has keys (%d, %d), want (7, 10)", enrollment.StudentID, enrollment.CourseID)
	}
	if enrollment.Status != models.EnrollmentActive {
		t.Errorf("Expected status %s, got %s", models.EnrollmentActive, enrollment.Status)
	}

	published := mockPublisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("Expected 1 published event, got %d", len(published))
	}
	if published[0].Type != events.EventStudentEnrolled {
		t.Errorf("Expected event type %q, got %q", events.EventStudentEnrolled, published[0].Type)
	}
	data, ok := published[0].Data.(events.StudentEnrolledEvent)
	if !ok {
		t.Fatalf("Expected StudentEnrolledEvent payload, got %T", published[0].Data)
	}
	if data.EnrollmentID != 42 || data.CourseID != 10 || data.StudentID != 7 {
		t.Errorf("Unexpected event payload: %+v", data)
	}
}

func TestEnrollmentService_Enroll_AlreadyEnrolled(t *testing.T) {
	repo := publishedCourseRepo()
	repo.enrollment.IsEnrolledFn = func(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (bool, error) {
		return true, nil
	}

	service := newEnrollmentTestService(repo, events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stdout, nil))))

	_, err := service.Enroll(context.Background(), 10, 7)
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("Expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestEnrollmentService_Enroll_DuplicateKeyRace(t *testing.T) {
	// The pre-check passes but a concurrent enrollment wins the insert; the
	// unique index surfaces as a duplicate-key error.
	repo := publishedCourseRepo()
	repo.enrollment.CreateFn = func(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
		return gorm.ErrDuplicatedKey
	}

	service := newEnrollmentTestService(repo, events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stdout, nil))))

	_, err := service.Enroll(context.Background(), 10, 7)
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("Expected ErrAlreadyEnrolled for duplicate insert, got %v", err)
	}
}

func TestEnrollmentService_Enroll_UnpublishedCourse(t *testing.T) {
	repo := &mockRepository{
		course: mockCourseRepo{
			GetByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
				return &models.Course{ID: id, TeacherID: 1, IsPublished: false}, nil
			},
		},
	}

	service := newEnrollmentTestService(repo, events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stdout, nil))))

	// Unpublished courses are invisible to students, so this reads as missing
	// rather than forbidden.
	_, err := service.Enroll(context.Background(), 10, 7)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnrollmentService_Enroll_CourseNotFound(t *testing.T) {
	repo := &mockRepository{}
	service := newEnrollmentTestService(repo, events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stdout, nil))))

	_, err := service.Enroll(context.Background(), 999, 7)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnrollmentService_GetCourseEnrollments_NotOwner(t *testing.T) {
	repo := &mockRepository{}
	service := newEnrollmentTestService(repo, events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stdout, nil))))

	_, _, err := service.GetCourseEnrollments(context.Background(), 10, repositories.EnrollmentFilters{}, 99)
	if !IsPermissionError(err) {
		t.Errorf("Expected a permission error, got %v", err)
	}
}

func TestEnrollmentService_GetStudentEnrollments_ProgressDegrades(t *testing.T) {
	repo := &mockRepository{
		enrollment: mockEnrollmentRepo{
			GetByStudentFn: func(ctx context.Context, tx *gorm.DB, studentID uint, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
				return []*models.Enrollment{{ID: 1, StudentID: studentID, CourseID: 10}}, 1, nil
			},
		},
		progress: mockProgressRepo{
			GetCourseProgressFn: func(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (*models.CourseProgress, error) {
				return nil, errors.New("aggregate query failed")
			},
		},
	}

	service := newEnrollmentTestService(repo, events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stdout, nil))))

	// Progress is informational on the list path; aggregate failures must not
	// fail the listing.
	responses, total, err := service.GetStudentEnrollments(context.Background(), 7, repositories.EnrollmentFilters{})
	if err != nil {
		t.Fatalf("Failed to list enrollments: %v", err)
	}
	if total != 1 || len(responses) != 1 {
		t.Fatalf("Expected 1 enrollment, got %d (total %d)", len(responses), total)
	}
	if responses[0].Progress != nil {
		t.Error("Progress should be omitted when the aggregate fails")
	}
}
