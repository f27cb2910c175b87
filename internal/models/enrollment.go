package models

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// Enrollment links a student to a course. The composite unique index is the
// authoritative guard against double enrollment; service-level checks only
// exist to give a friendly error on the common path.
type Enrollment struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	StudentID uint             `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollment_student_course"`
	CourseID  uint             `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_student_course;index"`
	Status    EnrollmentStatus `json:"status" gorm:"size:20;default:active"`

	EnrolledAt time.Time `json:"enrolled_at" gorm:"autoCreateTime"`

	Student *User   `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Course  *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
