package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// AssignmentPostgreSQL implements the AssignmentRepository interface
type AssignmentPostgreSQL struct {
	db *gorm.DB
}

// NewAssignmentPostgreSQL creates a new assignment repository instance
func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: db}
}

func (ar *AssignmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ar.db
}

func (ar *AssignmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	db := ar.getDB(tx)
	if err := db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (ar *AssignmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error) {
	db := ar.getDB(tx)
	var assignment models.Assignment
	if err := db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (ar *AssignmentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	db := ar.getDB(tx)
	if err := db.WithContext(ctx).Save(assignment).Error; err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	return nil
}

func (ar *AssignmentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := ar.getDB(tx)
	if err := db.WithContext(ctx).Where("assignment_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
		return fmt.Errorf("failed to delete submissions: %w", err)
	}
	if err := db.WithContext(ctx).Delete(&models.Assignment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

func (ar *AssignmentPostgreSQL) GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Assignment, error) {
	db := ar.getDB(tx)
	var assignments []*models.Assignment
	err := db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("due_date ASC NULLS LAST, id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments by course: %w", err)
	}
	return assignments, nil
}

// SubmissionPostgreSQL implements the SubmissionRepository interface
type SubmissionPostgreSQL struct {
	db *gorm.DB
}

// NewSubmissionPostgreSQL creates a new submission repository instance
func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{db: db}
}

func (sr *SubmissionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return sr.db
}

// Create inserts the submission row. The unique index on
// (assignment_id, student_id) guards against double submission; the raw
// error is returned unwrapped so callers can classify it.
func (sr *SubmissionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := sr.getDB(tx)
	return db.WithContext(ctx).Create(submission).Error
}

func (sr *SubmissionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	db := sr.getDB(tx)
	var submission models.Submission
	if err := db.WithContext(ctx).Preload("Assignment").First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (sr *SubmissionPostgreSQL) GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID, studentID uint) (*models.Submission, error) {
	db := sr.getDB(tx)
	var submission models.Submission
	err := db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (sr *SubmissionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := sr.getDB(tx)
	if err := db.WithContext(ctx).Save(submission).Error; err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}
	return nil
}

func (sr *SubmissionPostgreSQL) GetByAssignment(ctx context.Context, tx *gorm.DB, assignmentID uint) ([]*models.Submission, error) {
	db := sr.getDB(tx)
	var submissions []*models.Submission
	err := db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Preload("Student").
		Order("submitted_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions by assignment: %w", err)
	}
	return submissions, nil
}

func (sr *SubmissionPostgreSQL) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.Submission, error) {
	db := sr.getDB(tx)
	var submissions []*models.Submission
	err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Assignment").
		Order("submitted_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions by student: %w", err)
	}
	return submissions, nil
}

func (sr *SubmissionPostgreSQL) Grade(ctx context.Context, tx *gorm.DB, id uint, grade float64, feedback *string, graderID uint) error {
	db := sr.getDB(tx)
	now := time.Now()
	err := db.WithContext(ctx).Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"grade":     grade,
			"feedback":  feedback,
			"status":    models.SubmissionGraded,
			"graded_at": now,
			"graded_by": graderID,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to grade submission: %w", err)
	}
	return nil
}

func (sr *SubmissionPostgreSQL) CountUngraded(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error) {
	db := sr.getDB(tx)
	var count int64
	err := db.WithContext(ctx).
		Table("submissions s").
		Joins("JOIN assignments a ON a.id = s.assignment_id").
		Joins("JOIN courses c ON c.id = a.course_id").
		Where("c.teacher_id = ? AND s.status = ?", teacherID, models.SubmissionSubmitted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count ungraded submissions: %w", err)
	}
	return count, nil
}
