package repositories

import (
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type CourseFilters struct {
	TeacherID   *uint   `json:"teacher_id"`
	Category    *string `json:"category"`
	IsPublished *bool   `json:"is_published"`
	Search      string  `json:"search"`
	Limit       int     `json:"limit"`
	Offset      int     `json:"offset"`
	SortBy      string  `json:"sort_by"`    // "created_at", "title", "price"
	SortOrder   string  `json:"sort_order"` // "asc", "desc"
}

type ContentFilters struct {
	ContentType   *models.ContentType `json:"content_type"`
	PublishedOnly bool                `json:"published_only"`
}

type EnrollmentFilters struct {
	Status   *models.EnrollmentStatus `json:"status"`
	DateFrom *time.Time               `json:"date_from"`
	DateTo   *time.Time               `json:"date_to"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
}

type ForumFilters struct {
	Type   *models.PostType `json:"type"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type NotificationFilters struct {
	UnreadOnly bool `json:"unread_only"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type ContentStats struct {
	TotalItems     int                        `json:"total_items"`
	PublishedItems int                        `json:"published_items"`
	ItemsByType    map[models.ContentType]int `json:"items_by_type"`
	TotalVideoSecs int                        `json:"total_video_seconds"`
}

type CourseStats struct {
	EnrollmentCount   int     `json:"enrollment_count"`
	ContentCount      int     `json:"content_count"`
	AverageCompletion float64 `json:"average_completion"`
	ForumPostCount    int     `json:"forum_post_count"`
}

type TeacherDashboardStats struct {
	TotalCourses      int     `json:"total_courses"`
	PublishedCourses  int     `json:"published_courses"`
	TotalEnrollments  int     `json:"total_enrollments"`
	TotalContent      int     `json:"total_content"`
	AverageCompletion float64 `json:"average_completion"`
	PendingGrading    int     `json:"pending_grading"`
}

// StudentProgressRow is one roster line of a course progress report.
type StudentProgressRow struct {
	StudentID        uint       `json:"student_id"`
	StudentName      string     `json:"student_name"`
	StudentEmail     string     `json:"student_email"`
	EnrolledAt       time.Time  `json:"enrolled_at"`
	CompletedContent int        `json:"completed_content"`
	TotalContent     int        `json:"total_content"`
	AverageProgress  float64    `json:"average_progress"`
	LastActivity     *time.Time `json:"last_activity"`
}
