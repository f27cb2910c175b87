package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardPostgreSQL creates a new dashboard repository instance
func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== DASHBOARD STATS =====

func (r *dashboardRepository) GetTotalCourses(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Course{}).
		Where("teacher_id = ?", teacherID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to get total courses: %w", err)
	}

	return count, nil
}

func (r *dashboardRepository) GetPublishedCourses(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Course{}).
		Where("teacher_id = ? AND is_published = ?", teacherID, true).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to get published courses: %w", err)
	}

	return count, nil
}

func (r *dashboardRepository) GetTotalEnrollments(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error) {
	db := r.getDB(tx)
	var count int64

	err := db.WithContext(ctx).
		Table("enrollments e").
		Joins("JOIN courses c ON c.id = e.course_id").
		Where("c.teacher_id = ?", teacherID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get total enrollments: %w", err)
	}

	return count, nil
}

func (r *dashboardRepository) GetTotalContent(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error) {
	db := r.getDB(tx)
	var count int64

	err := db.WithContext(ctx).
		Table("course_contents cc").
		Joins("JOIN courses c ON c.id = cc.course_id").
		Where("c.teacher_id = ?", teacherID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get total content: %w", err)
	}

	return count, nil
}

// ===== METRICS =====

// GetAverageCompletion is the mean completion ratio across all enrollments
// in the teacher's courses. Enrollments in courses with no published content
// contribute 0.
func (r *dashboardRepository) GetAverageCompletion(ctx context.Context, tx *gorm.DB, teacherID uint) (float64, error) {
	db := r.getDB(tx)

	var result struct {
		AvgCompletion float64
	}
	err := db.WithContext(ctx).
		Table("enrollments e").
		Select(`COALESCE(AVG(
			CASE WHEN total.cnt = 0 THEN 0
			ELSE done.cnt * 100.0 / total.cnt END), 0) as avg_completion`).
		Joins("JOIN courses c ON c.id = e.course_id").
		Joins(`CROSS JOIN LATERAL (
			SELECT COUNT(*) as cnt FROM course_contents cc
			WHERE cc.course_id = e.course_id AND cc.is_published = true) total`).
		Joins(`CROSS JOIN LATERAL (
			SELECT COUNT(*) as cnt FROM student_progress sp
			JOIN course_contents cc ON cc.id = sp.content_id
			WHERE sp.student_id = e.student_id AND cc.course_id = e.course_id
			AND cc.is_published = true AND sp.is_completed = true) done`).
		Where("c.teacher_id = ?", teacherID).
		Scan(&result).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get average completion: %w", err)
	}

	return result.AvgCompletion, nil
}

// ===== RECENT ACTIVITY =====

func (r *dashboardRepository) GetRecentEnrollments(ctx context.Context, tx *gorm.DB, teacherID uint, limit int) ([]repositories.RecentEnrollmentData, error) {
	db := r.getDB(tx)
	if limit <= 0 {
		limit = 10
	}

	var rows []repositories.RecentEnrollmentData
	err := db.WithContext(ctx).
		Table("enrollments e").
		Select(`e.id as enrollment_id,
			u.id as student_id,
			u.full_name as student_name,
			c.id as course_id,
			c.title as course_title,
			e.enrolled_at`).
		Joins("JOIN users u ON u.id = e.student_id").
		Joins("JOIN courses c ON c.id = e.course_id").
		Where("c.teacher_id = ?", teacherID).
		Order("e.enrolled_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent enrollments: %w", err)
	}

	return rows, nil
}

// ===== PER-COURSE BREAKDOWN =====

func (r *dashboardRepository) GetCourseBreakdown(ctx context.Context, tx *gorm.DB, teacherID uint) ([]repositories.CourseBreakdownData, error) {
	db := r.getDB(tx)

	var rows []repositories.CourseBreakdownData
	err := db.WithContext(ctx).
		Table("courses c").
		Select(`c.id as course_id,
			c.title as course_title,
			(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) as enrollment_count,
			(SELECT COUNT(*) FROM course_contents cc WHERE cc.course_id = c.id) as content_count,
			COALESCE((
				SELECT AVG(CASE WHEN total.cnt = 0 THEN 0 ELSE done.cnt * 100.0 / total.cnt END)
				FROM enrollments e
				CROSS JOIN LATERAL (
					SELECT COUNT(*) as cnt FROM course_contents cc
					WHERE cc.course_id = c.id AND cc.is_published = true) total
				CROSS JOIN LATERAL (
					SELECT COUNT(*) as cnt FROM student_progress sp
					JOIN course_contents cc ON cc.id = sp.content_id
					WHERE sp.student_id = e.student_id AND cc.course_id = c.id
					AND cc.is_published = true AND sp.is_completed = true) done
				WHERE e.course_id = c.id), 0) as average_completion`).
		Where("c.teacher_id = ?", teacherID).
		Order("c.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get course breakdown: %w", err)
	}

	return rows, nil
}
