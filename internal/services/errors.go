package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by services. Handlers map these to HTTP codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account not verified")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrCourseNotFound  = errors.New("course not found")
	ErrContentNotFound = errors.New("content not found")

	ErrAlreadyEnrolled    = errors.New("student already enrolled in course")
	ErrNotEnrolled        = errors.New("student not enrolled in course")
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadySubmitted   = errors.New("assignment already submitted")

	ErrPostNotFound         = errors.New("forum post not found")
	ErrReplyNotFound        = errors.New("forum reply not found")
	ErrPostLocked           = errors.New("forum post is locked")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrValidationFailed = errors.New("validation failed")
)

// PermissionError carries context about a denied operation.
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s %d: %s",
		e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsPermissionError reports whether err is a PermissionError.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
