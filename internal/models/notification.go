package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationForumPost     NotificationType = "forum_post"
	NotificationForumReply    NotificationType = "forum_reply"
	NotificationGradePosted   NotificationType = "grade_posted"
	NotificationNewContent    NotificationType = "new_content"
	NotificationNewAssignment NotificationType = "new_assignment"
	NotificationCourseUpdate  NotificationType = "course_update"
)

type Notification struct {
	ID      uint             `json:"id" gorm:"primaryKey"`
	UserID  uint             `json:"user_id" gorm:"not null;index"`
	Type    NotificationType `json:"type" gorm:"not null;size:30"`
	Title   string           `json:"title" gorm:"not null;size:200"`
	Message string           `json:"message" gorm:"type:text"`

	// Related entity reference (course id, post id, submission id...)
	Data datatypes.JSON `json:"data,omitempty" gorm:"type:jsonb"`

	IsRead bool       `json:"is_read" gorm:"default:false;index"`
	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
