package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types published on the bus.
const (
	EventForumPostCreated   = "forum.post_created"
	EventForumReplyCreated  = "forum.reply_created"
	EventSubmissionGraded   = "assignment.submission_graded"
	EventContentPublished   = "course.content_published"
	EventStudentEnrolled    = "course.student_enrolled"
	EventBulkNotification   = "system.bulk_notification"
)

// Event is the envelope for every message on the bus.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with the service identity filled in.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    "course-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ===== EVENT PAYLOADS =====

type ForumPostCreatedEvent struct {
	PostID   uint   `json:"post_id"`
	CourseID uint   `json:"course_id"`
	AuthorID uint   `json:"author_id"`
	Title    string `json:"title"`
}

type SubmissionGradedEvent struct {
	SubmissionID uint    `json:"submission_id"`
	AssignmentID uint    `json:"assignment_id"`
	StudentID    uint    `json:"student_id"`
	Grade        float64 `json:"grade"`
}

type StudentEnrolledEvent struct {
	EnrollmentID uint `json:"enrollment_id"`
	CourseID     uint `json:"course_id"`
	StudentID    uint `json:"student_id"`
}

type BulkNotificationEvent struct {
	UserIDs []uint `json:"user_ids"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
