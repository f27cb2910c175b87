package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// ProgressPostgreSQL implements the ProgressRepository interface
type ProgressPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

// NewProgressPostgreSQL creates a new progress repository instance
func NewProgressPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ProgressRepository {
	return &ProgressPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (pr *ProgressPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *ProgressPostgreSQL) GetRecord(ctx context.Context, tx *gorm.DB, studentID, contentID uint) (*models.StudentProgress, error) {
	db := pr.getDB(tx)
	var record models.StudentProgress
	err := db.WithContext(ctx).
		Where("student_id = ? AND content_id = ?", studentID, contentID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (pr *ProgressPostgreSQL) Create(ctx context.Context, tx *gorm.DB, record *models.StudentProgress) error {
	db := pr.getDB(tx)
	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create progress record: %w", err)
	}
	pr.invalidateStudent(ctx, record.StudentID)
	return nil
}

func (pr *ProgressPostgreSQL) Update(ctx context.Context, tx *gorm.DB, record *models.StudentProgress) error {
	db := pr.getDB(tx)
	if err := db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update progress record: %w", err)
	}
	pr.invalidateStudent(ctx, record.StudentID)
	return nil
}

// invalidateStudent drops all cached aggregates for one student. Cache
// failures only cost a recompute on the next read.
func (pr *ProgressPostgreSQL) invalidateStudent(ctx context.Context, studentID uint) {
	_ = pr.cacheManager.Progress.InvalidatePattern(ctx, fmt.Sprintf("student:%d:*", studentID))
}

func (pr *ProgressPostgreSQL) GetContentProgress(ctx context.Context, tx *gorm.DB, studentID, courseID uint) ([]*models.ContentProgressItem, error) {
	db := pr.getDB(tx)
	var items []*models.ContentProgressItem

	err := db.WithContext(ctx).
		Table("course_contents cc").
		Select(`cc.id as content_id,
			cc.title,
			cc.content_type,
			cc.display_order,
			cc.video_duration,
			COALESCE(sp.progress_percentage, 0) as progress_percentage,
			COALESCE(sp.last_position, 0) as last_position,
			COALESCE(sp.is_completed, false) as is_completed,
			sp.completed_at`).
		Joins("LEFT JOIN student_progress sp ON sp.content_id = cc.id AND sp.student_id = ?", studentID).
		Where("cc.course_id = ? AND cc.is_published = ?", courseID, true).
		Order("cc.display_order ASC, cc.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get content progress: %w", err)
	}

	return items, nil
}

// GetCourseProgress aggregates one student's progress over the published
// content of a course. The left join makes missing records count as 0% and
// not completed; a course with no published content aggregates to all zeros.
// Outside a transaction the aggregate is served cache-aside with a short TTL;
// writes invalidate per student.
func (pr *ProgressPostgreSQL) GetCourseProgress(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (*models.CourseProgress, error) {
	if tx != nil {
		return pr.aggregateCourseProgress(ctx, tx, studentID, courseID)
	}

	var progress models.CourseProgress
	key := fmt.Sprintf("student:%d:course:%d", studentID, courseID)
	err := pr.cacheManager.Progress.CacheOrExecute(ctx, key, &progress, cache.ProgressCacheConfig.TTL, func() (interface{}, error) {
		return pr.aggregateCourseProgress(ctx, pr.db, studentID, courseID)
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (pr *ProgressPostgreSQL) aggregateCourseProgress(ctx context.Context, db *gorm.DB, studentID, courseID uint) (*models.CourseProgress, error) {
	var row struct {
		TotalContent     int
		CompletedContent int
		AverageProgress  float64
	}

	err := db.WithContext(ctx).
		Table("course_contents cc").
		Select(`COUNT(cc.id) as total_content,
			COUNT(CASE WHEN sp.is_completed = true THEN 1 END) as completed_content,
			COALESCE(AVG(COALESCE(sp.progress_percentage, 0)), 0) as average_progress`).
		Joins("LEFT JOIN student_progress sp ON sp.content_id = cc.id AND sp.student_id = ?", studentID).
		Where("cc.course_id = ? AND cc.is_published = ?", courseID, true).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate course progress: %w", err)
	}

	return &models.CourseProgress{
		TotalContent:     row.TotalContent,
		CompletedContent: row.CompletedContent,
		AverageProgress:  AverageProgress(row.AverageProgress),
		OverallProgress:  OverallProgress(row.CompletedContent, row.TotalContent),
	}, nil
}

// GetStudentOverallProgress returns one aggregate row per enrolled course.
func (pr *ProgressPostgreSQL) GetStudentOverallProgress(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.CourseProgressSummary, error) {
	db := pr.getDB(tx)

	var rows []struct {
		CourseID         uint
		CourseTitle      string
		TotalContent     int
		CompletedContent int
	}

	err := db.WithContext(ctx).
		Table("enrollments e").
		Select(`c.id as course_id,
			c.title as course_title,
			COUNT(cc.id) as total_content,
			COUNT(CASE WHEN sp.is_completed = true THEN 1 END) as completed_content`).
		Joins("JOIN courses c ON c.id = e.course_id").
		Joins("LEFT JOIN course_contents cc ON cc.course_id = c.id AND cc.is_published = true").
		Joins("LEFT JOIN student_progress sp ON sp.content_id = cc.id AND sp.student_id = e.student_id").
		Where("e.student_id = ?", studentID).
		Group("c.id, c.title").
		Order("c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate overall progress: %w", err)
	}

	summaries := make([]*models.CourseProgressSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &models.CourseProgressSummary{
			CourseID:           row.CourseID,
			CourseTitle:        row.CourseTitle,
			TotalContent:       row.TotalContent,
			CompletedContent:   row.CompletedContent,
			ProgressPercentage: OverallProgress(row.CompletedContent, row.TotalContent),
		})
	}

	return summaries, nil
}

func (pr *ProgressPostgreSQL) GetCourseRoster(ctx context.Context, tx *gorm.DB, courseID uint) ([]*repositories.StudentProgressRow, error) {
	db := pr.getDB(tx)

	var rows []*repositories.StudentProgressRow
	err := db.WithContext(ctx).
		Table("enrollments e").
		Select(`u.id as student_id,
			u.full_name as student_name,
			u.email as student_email,
			e.enrolled_at,
			COUNT(CASE WHEN sp.is_completed = true THEN 1 END) as completed_content,
			COUNT(cc.id) as total_content,
			COALESCE(AVG(COALESCE(sp.progress_percentage, 0)), 0) as average_progress,
			MAX(sp.updated_at) as last_activity`).
		Joins("JOIN users u ON u.id = e.student_id").
		Joins("LEFT JOIN course_contents cc ON cc.course_id = e.course_id AND cc.is_published = true").
		Joins("LEFT JOIN student_progress sp ON sp.content_id = cc.id AND sp.student_id = e.student_id").
		Where("e.course_id = ?", courseID).
		Group("u.id, u.full_name, u.email, e.enrolled_at").
		Order("u.full_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get course roster: %w", err)
	}

	for _, row := range rows {
		row.AverageProgress = AverageProgress(row.AverageProgress)
	}
	return rows, nil
}

// OverallProgress is the completion ratio as a rounded percentage. A course
// with no published content reports 0 rather than dividing by zero.
func OverallProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// AverageProgress rounds the mean percentage to a whole number; aggregates
// report integer percentages.
func AverageProgress(raw float64) float64 {
	return math.Round(raw)
}
