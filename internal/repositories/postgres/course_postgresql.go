package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// CoursePostgreSQL implements the CourseRepository interface
type CoursePostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

// NewCoursePostgreSQL creates a new course repository instance
func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (cr *CoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *CoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	db := cr.getDB(tx)
	if err := db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	cache.InvalidateCourseCache(ctx, cr.cacheManager, course.ID, course.TeacherID)
	return nil
}

func (cr *CoursePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	db := cr.getDB(tx)
	var course models.Course
	if err := db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (cr *CoursePostgreSQL) GetByIDWithTeacher(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	db := cr.getDB(tx)
	var course models.Course

	// Cache only on the non-transactional path
	if tx == nil {
		cacheKey := fmt.Sprintf("details:%d", id)
		err := cr.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
			var c models.Course
			if err := cr.db.WithContext(ctx).Preload("Teacher").First(&c, id).Error; err != nil {
				return nil, err
			}
			return &c, nil
		})
		if err != nil {
			return nil, err
		}
		return &course, nil
	}

	if err := db.WithContext(ctx).Preload("Teacher").First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (cr *CoursePostgreSQL) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	db := cr.getDB(tx)
	if err := db.WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	cache.InvalidateCourseCache(ctx, cr.cacheManager, course.ID, course.TeacherID)
	return nil
}

// Delete removes a course and everything hanging off it. Callers are expected
// to run this inside WithTransaction so a partial cascade never survives.
func (cr *CoursePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := cr.getDB(tx)

	var contentIDs []uint
	if err := db.WithContext(ctx).Model(&models.CourseContent{}).
		Where("course_id = ?", id).
		Pluck("id", &contentIDs).Error; err != nil {
		return fmt.Errorf("failed to collect content ids: %w", err)
	}

	if len(contentIDs) > 0 {
		if err := db.WithContext(ctx).Where("content_id IN ?", contentIDs).Delete(&models.StudentProgress{}).Error; err != nil {
			return fmt.Errorf("failed to delete progress records: %w", err)
		}
	}

	var assignmentIDs []uint
	if err := db.WithContext(ctx).Model(&models.Assignment{}).
		Where("course_id = ?", id).
		Pluck("id", &assignmentIDs).Error; err != nil {
		return fmt.Errorf("failed to collect assignment ids: %w", err)
	}
	if len(assignmentIDs) > 0 {
		if err := db.WithContext(ctx).Where("assignment_id IN ?", assignmentIDs).Delete(&models.Submission{}).Error; err != nil {
			return fmt.Errorf("failed to delete submissions: %w", err)
		}
	}

	var postIDs []uint
	if err := db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("course_id = ?", id).
		Pluck("id", &postIDs).Error; err != nil {
		return fmt.Errorf("failed to collect forum post ids: %w", err)
	}
	if len(postIDs) > 0 {
		if err := db.WithContext(ctx).Where("post_id IN ?", postIDs).Delete(&models.ForumReply{}).Error; err != nil {
			return fmt.Errorf("failed to delete forum replies: %w", err)
		}
	}

	steps := []struct {
		name  string
		model interface{}
	}{
		{"forum posts", &models.ForumPost{}},
		{"assignments", &models.Assignment{}},
		{"enrollments", &models.Enrollment{}},
		{"course contents", &models.CourseContent{}},
	}
	for _, step := range steps {
		if err := db.WithContext(ctx).Where("course_id = ?", id).Delete(step.model).Error; err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.name, err)
		}
	}

	if err := db.WithContext(ctx).Delete(&models.Course{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	cache.InvalidateCourseCache(ctx, cr.cacheManager, id, 0)
	cache.InvalidateContentCache(ctx, cr.cacheManager, id)
	return nil
}

func (cr *CoursePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	db := cr.getDB(tx)
	query := db.WithContext(ctx).Model(&models.Course{})
	query = cr.helpers.ApplyCourseFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	query = cr.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var courses []*models.Course
	if err := query.Preload("Teacher").Find(&courses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, total, nil
}

func (cr *CoursePostgreSQL) GetByTeacher(ctx context.Context, tx *gorm.DB, teacherID uint, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	filters.TeacherID = &teacherID
	return cr.List(ctx, tx, filters)
}

func (cr *CoursePostgreSQL) GetStats(ctx context.Context, tx *gorm.DB, courseID uint) (*repositories.CourseStats, error) {
	db := cr.getDB(tx)
	stats := &repositories.CourseStats{}

	var enrollmentCount int64
	if err := db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&enrollmentCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}
	stats.EnrollmentCount = int(enrollmentCount)

	var contentCount int64
	if err := db.WithContext(ctx).Model(&models.CourseContent{}).
		Where("course_id = ?", courseID).
		Count(&contentCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count contents: %w", err)
	}
	stats.ContentCount = int(contentCount)

	var postCount int64
	if err := db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("course_id = ?", courseID).
		Count(&postCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count forum posts: %w", err)
	}
	stats.ForumPostCount = int(postCount)

	// Mean of per-student completion ratios over published content
	var result struct {
		AvgCompletion float64
	}
	err := db.WithContext(ctx).
		Table("enrollments e").
		Select(`COALESCE(AVG(
			CASE WHEN total.cnt = 0 THEN 0
			ELSE done.cnt * 100.0 / total.cnt END), 0) as avg_completion`).
		Joins(`CROSS JOIN LATERAL (
			SELECT COUNT(*) as cnt FROM course_contents cc
			WHERE cc.course_id = e.course_id AND cc.is_published = true) total`).
		Joins(`CROSS JOIN LATERAL (
			SELECT COUNT(*) as cnt FROM student_progress sp
			JOIN course_contents cc ON cc.id = sp.content_id
			WHERE sp.student_id = e.student_id AND cc.course_id = e.course_id
			AND cc.is_published = true AND sp.is_completed = true) done`).
		Where("e.course_id = ?", courseID).
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute average completion: %w", err)
	}
	stats.AverageCompletion = result.AvgCompletion

	return stats, nil
}

func (cr *CoursePostgreSQL) GetEnrollmentCounts(ctx context.Context, tx *gorm.DB, courseIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	db := cr.getDB(tx)
	var rows []struct {
		CourseID uint
		Count    int64
	}
	err := db.WithContext(ctx).Model(&models.Enrollment{}).
		Select("course_id, COUNT(*) as count").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments per course: %w", err)
	}

	for _, row := range rows {
		counts[row.CourseID] = row.Count
	}
	return counts, nil
}

func (cr *CoursePostgreSQL) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	db := cr.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.Course{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return count > 0, nil
}

func (cr *CoursePostgreSQL) IsOwner(ctx context.Context, tx *gorm.DB, courseID, teacherID uint) (bool, error) {
	db := cr.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.Course{}).
		Where("id = ? AND teacher_id = ?", courseID, teacherID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check course ownership: %w", err)
	}
	return count > 0, nil
}
