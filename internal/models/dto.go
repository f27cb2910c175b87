package models

import (
	"time"
)

// ===== AUTH =====

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,user_role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// ===== COURSES =====

type CourseCreateRequest struct {
	Title         string  `json:"title" validate:"required,course_title"`
	Description   *string `json:"description" validate:"omitempty,course_description"`
	Category      string  `json:"category" validate:"required,min=1,max=100"`
	ThumbnailURL  *string `json:"thumbnail_url" validate:"omitempty,url"`
	Price         float64 `json:"price" validate:"min=0"`
	DurationWeeks int     `json:"duration_weeks" validate:"min=0,max=104"`
}

type CourseUpdateRequest struct {
	Title         *string  `json:"title" validate:"omitempty,course_title"`
	Description   *string  `json:"description" validate:"omitempty,course_description"`
	Category      *string  `json:"category" validate:"omitempty,min=1,max=100"`
	ThumbnailURL  *string  `json:"thumbnail_url" validate:"omitempty,url"`
	Price         *float64 `json:"price" validate:"omitempty,min=0"`
	DurationWeeks *int     `json:"duration_weeks" validate:"omitempty,min=0,max=104"`
	IsPublished   *bool    `json:"is_published"`
}

type ListCoursesParams struct {
	Page        int     `json:"page" validate:"min=0"`
	Size        int     `json:"size" validate:"min=1,max=100"`
	Category    string  `json:"category"`
	Search      string  `json:"search"`
	TeacherID   *uint   `json:"teacher_id"`
	IsPublished *bool   `json:"is_published"`
	SortBy      string  `json:"sort_by"`
	SortDir     string  `json:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

// ===== CONTENT =====

type ContentCreateRequest struct {
	Title         string      `json:"title" validate:"required,course_title"`
	Description   *string     `json:"description" validate:"omitempty,course_description"`
	ContentType   ContentType `json:"content_type" validate:"required,content_type"`
	ContentURL    *string     `json:"content_url" validate:"omitempty,url"`
	VideoPublicID *string     `json:"video_public_id"`
	VideoDuration *int        `json:"video_duration" validate:"omitempty,min=0"`
	IsPublished   bool        `json:"is_published"`
}

type ContentUpdateRequest struct {
	Title         *string      `json:"title" validate:"omitempty,course_title"`
	Description   *string      `json:"description" validate:"omitempty,course_description"`
	ContentType   *ContentType `json:"content_type" validate:"omitempty,content_type"`
	ContentURL    *string      `json:"content_url" validate:"omitempty,url"`
	VideoPublicID *string      `json:"video_public_id"`
	VideoDuration *int         `json:"video_duration" validate:"omitempty,min=0"`
	IsPublished   *bool        `json:"is_published"`
}

type ContentReorderRequest struct {
	ContentIDs []uint `json:"content_ids" validate:"required,min=1,dive,min=1"`
}

// ===== PROGRESS =====

type ProgressUpdateRequest struct {
	ProgressPercentage float64 `json:"progress_percentage" validate:"progress_percentage"`
	LastPosition       *int    `json:"last_position" validate:"omitempty,min=0"`
	TotalTimeWatched   *int    `json:"total_time_watched" validate:"omitempty,min=0"`
}

// ===== ASSIGNMENTS =====

type AssignmentCreateRequest struct {
	Title       string         `json:"title" validate:"required,course_title"`
	Description *string        `json:"description" validate:"omitempty,course_description"`
	Type        AssignmentType `json:"type" validate:"required,oneof=homework project essay"`
	MaxPoints   int            `json:"max_points" validate:"required,max_points"`
	DueDate     *time.Time     `json:"due_date"`
}

type AssignmentUpdateRequest struct {
	Title       *string         `json:"title" validate:"omitempty,course_title"`
	Description *string         `json:"description" validate:"omitempty,course_description"`
	Type        *AssignmentType `json:"type" validate:"omitempty,oneof=homework project essay"`
	MaxPoints   *int            `json:"max_points" validate:"omitempty,max_points"`
	DueDate     *time.Time      `json:"due_date"`
}

type SubmissionCreateRequest struct {
	Content string `json:"content" validate:"omitempty,max=50000"`
	FileURL string `json:"file_url" validate:"omitempty,url"`
}

type GradeSubmissionRequest struct {
	Grade    float64 `json:"grade" validate:"min=0"`
	Feedback *string `json:"feedback" validate:"omitempty,max=5000"`
}

// ===== FORUM =====

type ForumPostCreateRequest struct {
	Title   string   `json:"title" validate:"required,course_title"`
	Content string   `json:"content" validate:"required,max=50000"`
	Type    PostType `json:"type" validate:"omitempty,oneof=discussion question"`
}

type ForumPostUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,course_title"`
	Content  *string `json:"content" validate:"omitempty,max=50000"`
	IsPinned *bool   `json:"is_pinned"`
	IsLocked *bool   `json:"is_locked"`
}

type ForumReplyCreateRequest struct {
	Content string `json:"content" validate:"required,max=50000"`
}

type ListPostsParams struct {
	Page    int      `json:"page" validate:"min=0"`
	Size    int      `json:"size" validate:"min=1,max=100"`
	Type    PostType `json:"type"`
	Search  string   `json:"search"`
	SortBy  string   `json:"sort_by"`
	SortDir string   `json:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

// ===== SHARED RESPONSES =====

type PaginatedResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](items []T, totalCount int64, page, size int) *PaginatedResponse[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((totalCount + int64(size) - 1) / int64(size))
	}
	return &PaginatedResponse[T]{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}
}
