package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardRepository interface for teacher dashboard analytics operations
type DashboardRepository interface {
	// Counters scoped to one teacher's courses
	GetTotalCourses(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error)
	GetPublishedCourses(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error)
	GetTotalEnrollments(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error)
	GetTotalContent(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error)

	// Metrics
	GetAverageCompletion(ctx context.Context, tx *gorm.DB, teacherID uint) (float64, error)

	// Recent activity
	GetRecentEnrollments(ctx context.Context, tx *gorm.DB, teacherID uint, limit int) ([]RecentEnrollmentData, error)

	// Per-course breakdown
	GetCourseBreakdown(ctx context.Context, tx *gorm.DB, teacherID uint) ([]CourseBreakdownData, error)
}

// Data structures for dashboard responses

type RecentEnrollmentData struct {
	EnrollmentID uint      `json:"enrollment_id"`
	StudentID    uint      `json:"student_id"`
	StudentName  string    `json:"student_name"`
	CourseID     uint      `json:"course_id"`
	CourseTitle  string    `json:"course_title"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

type CourseBreakdownData struct {
	CourseID          uint    `json:"course_id"`
	CourseTitle       string  `json:"course_title"`
	EnrollmentCount   int64   `json:"enrollment_count"`
	ContentCount      int64   `json:"content_count"`
	AverageCompletion float64 `json:"average_completion"`
}
