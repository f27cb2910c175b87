package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
	"gorm.io/gorm"
)

// EnrollmentRepository interface for enrollment operations.
//
// Create relies on the composite unique index on (student_id, course_id);
// callers should translate a duplicate-key error into their own domain error
// rather than pre-locking. There is no row-level delete: enrollments leave
// the table only through the course-deletion cascade.
type EnrollmentRepository interface {
	// Basic operations
	Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Enrollment, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EnrollmentStatus) error

	// Query operations
	GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint, filters EnrollmentFilters) ([]*models.Enrollment, int64, error)
	GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters EnrollmentFilters) ([]*models.Enrollment, int64, error)
	GetStudentIDsByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]uint, error)

	// Validation
	IsEnrolled(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (bool, error)
	CountByCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error)
}

// ProgressRepository interface for per-content progress records and the
// derived course-level aggregates.
type ProgressRepository interface {
	// Record operations
	GetRecord(ctx context.Context, tx *gorm.DB, studentID, contentID uint) (*models.StudentProgress, error)
	Create(ctx context.Context, tx *gorm.DB, record *models.StudentProgress) error
	Update(ctx context.Context, tx *gorm.DB, record *models.StudentProgress) error

	// Query operations
	GetContentProgress(ctx context.Context, tx *gorm.DB, studentID, courseID uint) ([]*models.ContentProgressItem, error)

	// Aggregation
	GetCourseProgress(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (*models.CourseProgress, error)
	GetStudentOverallProgress(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.CourseProgressSummary, error)

	// Reporting
	GetCourseRoster(ctx context.Context, tx *gorm.DB, courseID uint) ([]*StudentProgressRow, error)
}
