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

// ContentPostgreSQL implements the ContentRepository interface
type ContentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

// NewContentPostgreSQL creates a new content repository instance
func NewContentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ContentRepository {
	return &ContentPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (cr *ContentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *ContentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, content *models.CourseContent) error {
	db := cr.getDB(tx)
	if err := db.WithContext(ctx).Create(content).Error; err != nil {
		return fmt.Errorf("failed to create course content: %w", err)
	}

	cache.InvalidateContentCache(ctx, cr.cacheManager, content.CourseID)
	return nil
}

func (cr *ContentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.CourseContent, error) {
	db := cr.getDB(tx)
	var content models.CourseContent
	if err := db.WithContext(ctx).First(&content, id).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (cr *ContentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, content *models.CourseContent) error {
	db := cr.getDB(tx)
	if err := db.WithContext(ctx).Save(content).Error; err != nil {
		return fmt.Errorf("failed to update course content: %w", err)
	}

	cache.InvalidateContentCache(ctx, cr.cacheManager, content.CourseID)
	return nil
}

func (cr *ContentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := cr.getDB(tx)

	content, err := cr.GetByID(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Where("content_id = ?", id).Delete(&models.StudentProgress{}).Error; err != nil {
		return fmt.Errorf("failed to delete progress records: %w", err)
	}
	if err := db.WithContext(ctx).Delete(&models.CourseContent{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete course content: %w", err)
	}

	cache.InvalidateContentCache(ctx, cr.cacheManager, content.CourseID)
	return nil
}

func (cr *ContentPostgreSQL) GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters repositories.ContentFilters) ([]*models.CourseContent, error) {
	db := cr.getDB(tx)
	query := db.WithContext(ctx).Where("course_id = ?", courseID)

	if filters.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filters.ContentType != nil {
		query = query.Where("content_type = ?", *filters.ContentType)
	}

	var contents []*models.CourseContent
	if err := query.Order("display_order ASC, id ASC").Find(&contents).Error; err != nil {
		return nil, fmt.Errorf("failed to get course contents: %w", err)
	}
	return contents, nil
}

func (cr *ContentPostgreSQL) CountPublished(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	db := cr.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.CourseContent{}).
		Where("course_id = ? AND is_published = ?", courseID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count published contents: %w", err)
	}
	return count, nil
}

// Reorder rewrites display_order to match the given id sequence. IDs not
// belonging to the course are ignored by the WHERE clause.
func (cr *ContentPostgreSQL) Reorder(ctx context.Context, tx *gorm.DB, courseID uint, orderedIDs []uint) error {
	db := cr.getDB(tx)

	for i, id := range orderedIDs {
		err := db.WithContext(ctx).Model(&models.CourseContent{}).
			Where("id = ? AND course_id = ?", id, courseID).
			Update("display_order", i+1).Error
		if err != nil {
			return fmt.Errorf("failed to reorder content %d: %w", id, err)
		}
	}

	cache.InvalidateContentCache(ctx, cr.cacheManager, courseID)
	return nil
}

func (cr *ContentPostgreSQL) NextDisplayOrder(ctx context.Context, tx *gorm.DB, courseID uint) (int, error) {
	db := cr.getDB(tx)
	var result struct {
		MaxOrder int
	}
	err := db.WithContext(ctx).Model(&models.CourseContent{}).
		Select("COALESCE(MAX(display_order), 0) as max_order").
		Where("course_id = ?", courseID).
		Scan(&result).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get max display order: %w", err)
	}
	return result.MaxOrder + 1, nil
}

func (cr *ContentPostgreSQL) GetStats(ctx context.Context, tx *gorm.DB, courseID uint) (*repositories.ContentStats, error) {
	db := cr.getDB(tx)
	stats := &repositories.ContentStats{
		ItemsByType: make(map[models.ContentType]int),
	}

	var rows []struct {
		ContentType models.ContentType
		Count       int64
	}
	err := db.WithContext(ctx).Model(&models.CourseContent{}).
		Select("content_type, COUNT(*) as count").
		Where("course_id = ?", courseID).
		Group("content_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count contents by type: %w", err)
	}
	for _, row := range rows {
		stats.ItemsByType[row.ContentType] = int(row.Count)
		stats.TotalItems += int(row.Count)
	}

	var published int64
	if err := db.WithContext(ctx).Model(&models.CourseContent{}).
		Where("course_id = ? AND is_published = ?", courseID, true).
		Count(&published).Error; err != nil {
		return nil, fmt.Errorf("failed to count published contents: %w", err)
	}
	stats.PublishedItems = int(published)

	var duration struct {
		TotalSecs int
	}
	err = db.WithContext(ctx).Model(&models.CourseContent{}).
		Select("COALESCE(SUM(video_duration), 0) as total_secs").
		Where("course_id = ?", courseID).
		Scan(&duration).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum video duration: %w", err)
	}
	stats.TotalVideoSecs = duration.TotalSecs

	return stats, nil
}
