package validator

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
)

func TestBusinessValidator_ValidateCoursePublish(t *testing.T) {
	bv := NewBusinessValidator(New())

	course := &models.Course{Title: "Go Basics"}
	if errs := bv.ValidateCoursePublish(course, 3); len(errs) != 0 {
		t.Errorf("Publishable course rejected: %v", errs)
	}

	if errs := bv.ValidateCoursePublish(course, 0); len(errs) != 1 {
		t.Errorf("Expected error for empty course, got %v", errs)
	}

	empty := &models.Course{Title: "   "}
	if errs := bv.ValidateCoursePublish(empty, 0); len(errs) != 2 {
		t.Errorf("Expected 2 errors for blank title and no content, got %v", errs)
	}
}

func TestBusinessValidator_ValidateGrade(t *testing.T) {
	bv := NewBusinessValidator(New())
	assignment := &models.Assignment{MaxPoints: 100}

	if errs := bv.ValidateGrade(85, assignment); len(errs) != 0 {
		t.Errorf("Valid grade rejected: %v", errs)
	}
	if errs := bv.ValidateGrade(100, assignment); len(errs) != 0 {
		t.Errorf("Full marks rejected: %v", errs)
	}
	if errs := bv.ValidateGrade(-1, assignment); len(errs) != 1 {
		t.Errorf("Expected error for negative grade, got %v", errs)
	}
	if errs := bv.ValidateGrade(101, assignment); len(errs) != 1 {
		t.Errorf("Expected error for grade over max, got %v", errs)
	}
}

func TestBusinessValidator_ValidateSubmission(t *testing.T) {
	bv := NewBusinessValidator(New())

	t.Run("BeforeDue", func(t *testing.T) {
		due := time.Now().Add(24 * time.Hour)
		assignment := &models.Assignment{DueDate: &due}
		if errs := bv.ValidateSubmission(assignment, "my answer", ""); len(errs) != 0 {
			t.Errorf("Valid submission rejected: %v", errs)
		}
	})

	t.Run("PastDue", func(t *testing.T) {
		due := time.Now().Add(-time.Hour)
		assignment := &models.Assignment{DueDate: &due}
		if errs := bv.ValidateSubmission(assignment, "my answer", ""); len(errs) != 1 {
			t.Errorf("Expected due-date error, got %v", errs)
		}
	})

	t.Run("NoDueDate", func(t *testing.T) {
		assignment := &models.Assignment{}
		if errs := bv.ValidateSubmission(assignment, "", "https://files.example.com/a.pdf"); len(errs) != 0 {
			t.Errorf("File-only submission rejected: %v", errs)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		assignment := &models.Assignment{}
		if errs := bv.ValidateSubmission(assignment, "  ", ""); len(errs) != 1 {
			t.Errorf("Expected empty-submission error, got %v", errs)
		}
	})
}

func TestBusinessValidator_ValidateContentReorder(t *testing.T) {
	bv := NewBusinessValidator(New())
	courseIDs := []uint{1, 2, 3}

	if errs := bv.ValidateContentReorder([]uint{3, 1, 2}, courseIDs); len(errs) != 0 {
		t.Errorf("Valid permutation rejected: %v", errs)
	}

	if errs := bv.ValidateContentReorder([]uint{1, 2}, courseIDs); len(errs) == 0 {
		t.Error("Expected error for incomplete list")
	}

	if errs := bv.ValidateContentReorder([]uint{1, 2, 9}, courseIDs); len(errs) == 0 {
		t.Error("Expected error for foreign content ID")
	}

	if errs := bv.ValidateContentReorder([]uint{1, 2, 2}, courseIDs); len(errs) == 0 {
		t.Error("Expected error for duplicated ID")
	}
}
