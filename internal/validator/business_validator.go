package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
)

// BusinessValidator handles business rule validation on top of struct tags.
type BusinessValidator struct {
	validator *Validator
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator(v *Validator) *BusinessValidator {
	return &BusinessValidator{validator: v}
}

// Validate validates struct tags for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	return bv.validator.Validate(s)
}

// ValidateCoursePublish validates that a course can be published
func (bv *BusinessValidator) ValidateCoursePublish(course *models.Course, contentCount int64) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(course.Title) == "" {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: "is required before publishing",
			Rule:    "business_logic",
		})
	}

	if contentCount == 0 {
		errors = append(errors, ValidationError{
			Field:   "contents",
			Message: "course must have at least one content item before publishing",
			Value:   contentCount,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateProgressUpdate validates a progress percentage update
func (bv *BusinessValidator) ValidateProgressUpdate(percentage float64) ValidationErrors {
	var errors ValidationErrors

	if percentage < 0 || percentage > 100 {
		errors = append(errors, ValidationError{
			Field:   "progress_percentage",
			Message: "must be between 0 and 100",
			Value:   percentage,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateGrade validates a grade against the assignment's max points
func (bv *BusinessValidator) ValidateGrade(grade float64, assignment *models.Assignment) ValidationErrors {
	var errors ValidationErrors

	if grade < 0 {
		errors = append(errors, ValidationError{
			Field:   "grade",
			Message: "cannot be negative",
			Value:   grade,
			Rule:    "business_logic",
		})
	}

	if grade > float64(assignment.MaxPoints) {
		errors = append(errors, ValidationError{
			Field:   "grade",
			Message: fmt.Sprintf("cannot exceed max points (%d)", assignment.MaxPoints),
			Value:   grade,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateSubmission validates submission conditions against the assignment
func (bv *BusinessValidator) ValidateSubmission(assignment *models.Assignment, content, fileURL string) ValidationErrors {
	var errors ValidationErrors

	if assignment.DueDate != nil && time.Now().After(*assignment.DueDate) {
		errors = append(errors, ValidationError{
			Field:   "due_date",
			Message: "assignment due date has passed",
			Value:   assignment.DueDate,
			Rule:    "business_logic",
		})
	}

	if strings.TrimSpace(content) == "" && strings.TrimSpace(fileURL) == "" {
		errors = append(errors, ValidationError{
			Field:   "content",
			Message: "submission must include content or a file",
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateContentReorder validates a reorder request against the course's contents
func (bv *BusinessValidator) ValidateContentReorder(contentIDs []uint, courseContentIDs []uint) ValidationErrors {
	var errors ValidationErrors

	if len(contentIDs) != len(courseContentIDs) {
		errors = append(errors, ValidationError{
			Field:   "content_ids",
			Message: "must include every content item of the course exactly once",
			Value:   len(contentIDs),
			Rule:    "business_logic",
		})
		return errors
	}

	known := make(map[uint]bool, len(courseContentIDs))
	for _, id := range courseContentIDs {
		known[id] = true
	}

	seen := make(map[uint]bool, len(contentIDs))
	for i, id := range contentIDs {
		if !known[id] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("content_ids[%d]", i),
				Message: "does not belong to this course",
				Value:   id,
				Rule:    "business_logic",
			})
		}
		if seen[id] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("content_ids[%d]", i),
				Message: "is duplicated",
				Value:   id,
				Rule:    "business_logic",
			})
		}
		seen[id] = true
	}

	return errors
}
