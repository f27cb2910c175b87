package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
	"gorm.io/gorm"
)

// AssignmentRepository interface for assignment operations
type AssignmentRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error)
	Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// Query operations
	GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Assignment, error)
}

// SubmissionRepository interface for submission operations.
//
// Create relies on the composite unique index on (assignment_id, student_id).
type SubmissionRepository interface {
	// Basic operations
	Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID, studentID uint) (*models.Submission, error)
	Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error

	// Query operations
	GetByAssignment(ctx context.Context, tx *gorm.DB, assignmentID uint) ([]*models.Submission, error)
	GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.Submission, error)

	// Grading
	Grade(ctx context.Context, tx *gorm.DB, id uint, grade float64, feedback *string, graderID uint) error
	CountUngraded(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error)
}
