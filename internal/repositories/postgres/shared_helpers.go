package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"gorm.io/gorm"
)

// SharedHelpers contains common database operations
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyCourseFilters applies common filters to course queries
func (h *SharedHelpers) ApplyCourseFilters(query *gorm.DB, filters repositories.CourseFilters) *gorm.DB {
	if filters.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filters.TeacherID)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.IsPublished != nil {
		query = query.Where("is_published = ?", *filters.IsPublished)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	return query
}

// ApplyPaginationAndSort applies pagination and sorting with SQL injection protection
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	// Whitelist allowed sort columns
	allowedSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"id":         true,
		"title":      true,
		"price":      true,
		"category":   true,
	}

	// Validate and set sort column
	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	// Validate and set sort order
	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// GetCourseBasicInfo gets basic course info without relations
func (h *SharedHelpers) GetCourseBasicInfo(ctx context.Context, courseID uint) (*models.Course, error) {
	var course models.Course
	err := h.db.WithContext(ctx).
		Select("id, teacher_id, title, is_published").
		First(&course, courseID).Error
	return &course, err
}

// CountEnrollments counts enrollments for a course
func (h *SharedHelpers) CountEnrollments(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := h.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

// BulkUpdatePublishState updates the publish flag for multiple content items
func (h *SharedHelpers) BulkUpdatePublishState(ctx context.Context, ids []uint, published bool) error {
	if len(ids) == 0 {
		return fmt.Errorf("no IDs provided for bulk update")
	}
	return h.db.WithContext(ctx).
		Model(&models.CourseContent{}).
		Where("id IN ?", ids).
		Update("is_published", published).Error
}
