package models

import "time"

type AssignmentType string

const (
	AssignmentHomework AssignmentType = "homework"
	AssignmentProject  AssignmentType = "project"
	AssignmentEssay    AssignmentType = "essay"
)

type Assignment struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null;size:200"`
	Description *string        `json:"description" gorm:"type:text"`
	Type        AssignmentType `json:"type" gorm:"size:20;default:homework"`
	MaxPoints   int            `json:"max_points" gorm:"not null;default:100"`
	DueDate     *time.Time     `json:"due_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (Assignment) TableName() string {
	return "assignments"
}

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

// Submission holds one student's answer to an assignment. One submission per
// (assignment, student), enforced by the composite unique index.
type Submission struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	AssignmentID uint             `json:"assignment_id" gorm:"not null;uniqueIndex:idx_submission_assignment_student"`
	StudentID    uint             `json:"student_id" gorm:"not null;uniqueIndex:idx_submission_assignment_student;index"`
	Content      string           `json:"content" gorm:"type:text"`
	FileURL      *string          `json:"file_url" gorm:"size:500"`
	Status       SubmissionStatus `json:"status" gorm:"size:20;default:submitted"`

	Grade    *float64 `json:"grade"`
	Feedback *string  `json:"feedback" gorm:"type:text"`
	GradedAt *time.Time `json:"graded_at"`
	GradedBy *uint    `json:"graded_by"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at"`

	Assignment *Assignment `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID"`
	Student    *User       `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (Submission) TableName() string {
	return "submissions"
}
