package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// EnrollmentPostgreSQL implements the EnrollmentRepository interface
type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

// NewEnrollmentPostgreSQL creates a new enrollment repository instance
func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

func (er *EnrollmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return er.db
}

// Create inserts the enrollment row. The unique index on
// (student_id, course_id) makes the insert the authoritative duplicate
// check; the raw error is returned unwrapped so callers can classify it.
func (er *EnrollmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
	db := er.getDB(tx)
	return db.WithContext(ctx).Create(enrollment).Error
}

func (er *EnrollmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Enrollment, error) {
	db := er.getDB(tx)
	var enrollment models.Enrollment
	if err := db.WithContext(ctx).First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (er *EnrollmentPostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EnrollmentStatus) error {
	db := er.getDB(tx)
	err := db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update enrollment status: %w", err)
	}
	return nil
}

func (er *EnrollmentPostgreSQL) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	db := er.getDB(tx)
	query := db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("student_id = ?", studentID)
	query = er.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var enrollments []*models.Enrollment
	err := query.Preload("Course").Preload("Course.Teacher").
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get enrollments by student: %w", err)
	}

	return enrollments, total, nil
}

func (er *EnrollmentPostgreSQL) GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	db := er.getDB(tx)
	query := db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ?", courseID)
	query = er.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var enrollments []*models.Enrollment
	err := query.Preload("Student").
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get enrollments by course: %w", err)
	}

	return enrollments, total, nil
}

func (er *EnrollmentPostgreSQL) GetStudentIDsByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]uint, error) {
	db := er.getDB(tx)
	var ids []uint
	err := db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Pluck("student_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get student ids by course: %w", err)
	}
	return ids, nil
}

func (er *EnrollmentPostgreSQL) IsEnrolled(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (bool, error) {
	db := er.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return count > 0, nil
}

func (er *EnrollmentPostgreSQL) CountByCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	db := er.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}

func (er *EnrollmentPostgreSQL) applyFilters(query *gorm.DB, filters repositories.EnrollmentFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("enrolled_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("enrolled_at <= ?", *filters.DateTo)
	}
	return query
}
