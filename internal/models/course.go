package models

import (
	"time"

	"gorm.io/gorm"
)

type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentDocument ContentType = "document"
	ContentQuiz     ContentType = "quiz"
)

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200"`
	Description *string `json:"description" gorm:"type:text"`
	TeacherID   uint    `json:"teacher_id" gorm:"not null;index"`

	// Catalog info
	Category     *string  `json:"category" gorm:"size:100"`
	ThumbnailURL *string  `json:"thumbnail_url" gorm:"size:500"`
	Price        float64  `json:"price" gorm:"default:0"`
	DurationWeeks *int    `json:"duration_weeks"`

	IsPublished bool `json:"is_published" gorm:"default:false;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Teacher  *User           `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Contents []CourseContent `json:"contents,omitempty" gorm:"foreignKey:CourseID"`
}

func (Course) TableName() string {
	return "courses"
}

type CourseContent struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	CourseID    uint        `json:"course_id" gorm:"not null;index"`
	Title       string      `json:"title" gorm:"not null;size:200"`
	Description *string     `json:"description" gorm:"type:text"`
	ContentType ContentType `json:"content_type" gorm:"not null;size:20"`

	// Media reference (external storage, only the pointer is kept here)
	ContentURL    *string `json:"content_url" gorm:"size:500"`
	VideoPublicID *string `json:"video_public_id" gorm:"size:255"`
	VideoDuration *int    `json:"video_duration"` // seconds

	DisplayOrder int  `json:"display_order" gorm:"not null;default:0"`
	IsPublished  bool `json:"is_published" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (CourseContent) TableName() string {
	return "course_contents"
}
