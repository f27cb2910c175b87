package models

import "time"

// CompletionThreshold is the progress percentage at or above which a content
// item counts as completed.
const CompletionThreshold = 95.0

// StudentProgress is one row per (student, content item). CompletedAt is
// write-once: it records the first time the item crossed the completion
// threshold and is never cleared, even if the reported percentage later
// drops below it again.
type StudentProgress struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_progress_student_content"`
	ContentID uint `json:"content_id" gorm:"not null;uniqueIndex:idx_progress_student_content;index"`

	ProgressPercentage float64 `json:"progress_percentage" gorm:"not null;default:0"`
	LastPosition       int     `json:"last_position" gorm:"default:0"`       // seconds into the media
	TotalTimeWatched   int     `json:"total_time_watched" gorm:"default:0"`  // cumulative seconds

	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Content *CourseContent `json:"content,omitempty" gorm:"foreignKey:ContentID"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

// CourseProgress is the per-course aggregate for one student.
type CourseProgress struct {
	TotalContent     int     `json:"total_content"`
	CompletedContent int     `json:"completed_content"`
	AverageProgress  float64 `json:"average_progress"`
	OverallProgress  int     `json:"overall_progress"`
}

// CourseProgressSummary is one row of a student's cross-course overview.
type CourseProgressSummary struct {
	CourseID           uint    `json:"course_id"`
	CourseTitle        string  `json:"course_title"`
	TotalContent       int     `json:"total_content"`
	CompletedContent   int     `json:"completed_content"`
	ProgressPercentage int     `json:"progress_percentage"`
}

// ContentProgressItem joins a content item with the student's progress row,
// if any. Items without a progress row report zero values.
type ContentProgressItem struct {
	ContentID          uint        `json:"content_id"`
	Title              string      `json:"title"`
	ContentType        ContentType `json:"content_type"`
	DisplayOrder       int         `json:"display_order"`
	VideoDuration      *int        `json:"video_duration"`
	ProgressPercentage float64     `json:"progress_percentage"`
	LastPosition       int         `json:"last_position"`
	IsCompleted        bool        `json:"is_completed"`
	CompletedAt        *time.Time  `json:"completed_at"`
}
