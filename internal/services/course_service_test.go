package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
	"gorm.io/gorm"
)

func newCourseTestService(repo *mockRepository) CourseService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewCourseService(repo, nil, logger, validator.New())
}

func TestCourseService_Create_RequiresTeacherRole(t *testing.T) {
	repo := &mockRepository{}
	service := newCourseTestService(repo)

	_, err := service.Create(context.Background(), &CreateCourseRequest{
		Title:    "Go Basics",
		Category: "programming",
	}, 7)
	if !IsPermissionError(err) {
		t.Errorf("Expected a permission error for non-teacher, got %v", err)
	}
}

func TestCourseService_Create(t *testing.T) {
	repo := &mockRepository{
		user: mockUserRepo{
			HasRoleFn: func(ctx context.Context, tx *gorm.DB, id uint, role models.UserRole) (bool, error) {
				return role == models.RoleTeacher, nil
			},
		},
	}

	var created *models.Course
	repo.course.CreateFn = func(ctx context.Context, tx *gorm.DB, course *models.Course) error {
		created = course
		course.ID = 10
		return nil
	}
	repo.course.GetByIDWithTeacherFn = func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
		return created, nil
	}

	service := newCourseTestService(repo)

	resp, err := service.Create(context.Background(), &CreateCourseRequest{
		Title:         "Go Basics",
		Category:      "programming",
		DurationWeeks: 8,
	}, 7)
	if err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}

	if created.TeacherID != 7 {
		t.Errorf("Course owned by %d, want 7", created.TeacherID)
	}
	if created.IsPublished {
		t.Error("New courses must start unpublished")
	}
	if created.DurationWeeks == nil || *created.DurationWeeks != 8 {
		t.Error("DurationWeeks should be carried over")
	}
	if !resp.CanEdit {
		t.Error("Creator should be able to edit")
	}
}

func TestCourseService_GetByID_UnpublishedHiddenFromOthers(t *testing.T) {
	repo := &mockRepository{
		course: mockCourseRepo{
			GetByIDWithTeacherFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
				return &models.Course{ID: id, TeacherID: 7, IsPublished: false}, nil
			},
		},
	}

	service := newCourseTestService(repo)

	// The owner sees their draft.
	if _, err := service.GetByID(context.Background(), 10, 7); err != nil {
		t.Errorf("Owner should see unpublished course, got %v", err)
	}

	// Everyone else gets not-found, not forbidden.
	if _, err := service.GetByID(context.Background(), 10, 99); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Expected ErrCourseNotFound for non-owner, got %v", err)
	}
	if _, err := service.GetByID(context.Background(), 10, 0); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Expected ErrCourseNotFound for anonymous, got %v", err)
	}
}

func TestCourseService_Delete_CascadesEnrollments(t *testing.T) {
	deleteCalls := 0
	repo := &mockRepository{
		course: mockCourseRepo{
			GetByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
				return &models.Course{ID: id, TeacherID: 7}, nil
			},
			DeleteFn: func(ctx context.Context, tx *gorm.DB, id uint) error {
				deleteCalls++
				return nil
			},
		},
	}

	service := newCourseTestService(repo)

	if err := service.Delete(context.Background(), 10, 7); err != nil {
		t.Fatalf("Failed to delete course: %v", err)
	}
	if deleteCalls != 1 {
		t.Errorf("Expected 1 cascading delete, got %d", deleteCalls)
	}

	// Course deletion is the only path that removes enrollments; the
	// enrollment repository exposes no row-level delete for a student action
	// to call.
	if _, ok := repo.Enrollment().(interface {
		Delete(ctx context.Context, tx *gorm.DB, id uint) error
	}); ok {
		t.Error("Enrollment repository should not expose a row-level delete")
	}
}

func TestCourseService_Publish_RequiresContent(t *testing.T) {
	repo := &mockRepository{
		course: mockCourseRepo{
			GetByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
				return &models.Course{ID: id, TeacherID: 7, Title: "Go Basics"}, nil
			},
		},
	}

	service := newCourseTestService(repo)

	// No published content yet.
	err := service.Publish(context.Background(), 10, 7)
	if err == nil {
		t.Fatal("Expected validation error for empty course")
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Errorf("Expected ValidationErrors, got %T", err)
	}
}

func TestCourseService_Publish(t *testing.T) {
	var saved *models.Course
	repo := &mockRepository{
		course: mockCourseRepo{
			GetByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
				return &models.Course{ID: id, TeacherID: 7, Title: "Go Basics"}, nil
			},
			UpdateFn: func(ctx context.Context, tx *gorm.DB, course *models.Course) error {
				saved = course
				return nil
			},
		},
		content: mockContentRepo{
			CountPublishedFn: func(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
				return 3, nil
			},
		},
	}

	service := newCourseTestService(repo)

	if err := service.Publish(context.Background(), 10, 7); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}
	if saved == nil || !saved.IsPublished {
		t.Error("Course should be saved as published")
	}
}

func TestCourseService_Publish_Idempotent(t *testing.T) {
	updateCalls := 0
	repo := &mockRepository{
		course: mockCourseRepo{
			GetByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
				return &models.Course{ID: id, TeacherID: 7, Title: "Go Basics", IsPublished: true}, nil
			},
			UpdateFn: func(ctx context.Context, tx *gorm.DB, course *models.Course) error {
				updateCalls++
				return nil
			},
		},
	}

	service := newCourseTestService(repo)

	if err := service.Publish(context.Background(), 10, 7); err != nil {
		t.Fatalf("Publishing a published course should be a no-op, got %v", err)
	}
	if updateCalls != 0 {
		t.Errorf("Expected no update for already-published course, got %d", updateCalls)
	}
}

func TestCourseService_Publish_NotOwner(t *testing.T) {
	repo := &mockRepository{
		course: mockCourseRepo{
			GetByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
				return &models.Course{ID: id, TeacherID: 7}, nil
			},
		},
	}

	service := newCourseTestService(repo)

	err := service.Publish(context.Background(), 10, 99)
	if !IsPermissionError(err) {
		t.Errorf("Expected a permission error, got %v", err)
	}
}

func TestCourseService_List_ForcesPublishedFilter(t *testing.T) {
	var gotFilters repositories.CourseFilters
	repo := &mockRepository{
		course: mockCourseRepo{
			ListFn: func(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
				gotFilters = filters
				return []*models.Course{{ID: 1, TeacherID: 7, IsPublished: true}}, 1, nil
			},
		},
	}

	service := newCourseTestService(repo)

	// Even a caller-supplied unpublished filter must not leak drafts.
	unpublished := false
	resp, err := service.List(context.Background(), repositories.CourseFilters{IsPublished: &unpublished, Limit: 20}, 0)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if gotFilters.IsPublished == nil || !*gotFilters.IsPublished {
		t.Error("Catalog listing must force IsPublished=true")
	}
	if resp.Total != 1 || len(resp.Courses) != 1 {
		t.Errorf("Expected 1 course, got %d (total %d)", len(resp.Courses), resp.Total)
	}
}
