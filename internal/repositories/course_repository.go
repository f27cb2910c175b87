package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
	"gorm.io/gorm"
)

// CourseRepository interface for course operations
type CourseRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	GetByIDWithTeacher(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	Update(ctx context.Context, tx *gorm.DB, course *models.Course) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// Query operations
	List(ctx context.Context, tx *gorm.DB, filters CourseFilters) ([]*models.Course, int64, error)
	GetByTeacher(ctx context.Context, tx *gorm.DB, teacherID uint, filters CourseFilters) ([]*models.Course, int64, error)

	// Statistics
	GetStats(ctx context.Context, tx *gorm.DB, courseID uint) (*CourseStats, error)
	GetEnrollmentCounts(ctx context.Context, tx *gorm.DB, courseIDs []uint) (map[uint]int64, error)

	// Validation
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	IsOwner(ctx context.Context, tx *gorm.DB, courseID, teacherID uint) (bool, error)
}

// ContentRepository interface for course content operations
type ContentRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, content *models.CourseContent) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.CourseContent, error)
	Update(ctx context.Context, tx *gorm.DB, content *models.CourseContent) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// Query operations
	GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters ContentFilters) ([]*models.CourseContent, error)
	CountPublished(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error)

	// Ordering
	Reorder(ctx context.Context, tx *gorm.DB, courseID uint, orderedIDs []uint) error
	NextDisplayOrder(ctx context.Context, tx *gorm.DB, courseID uint) (int, error)

	// Statistics
	GetStats(ctx context.Context, tx *gorm.DB, courseID uint) (*ContentStats, error)
}
