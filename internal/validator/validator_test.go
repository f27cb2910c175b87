package validator

import (
	"testing"

	"github.com/SAP-F-2025/course-service/internal/models"
)

type progressPayload struct {
	Percentage float64 `validate:"progress_percentage"`
}

func TestValidator_ProgressPercentage(t *testing.T) {
	v := New()

	cases := []struct {
		value float64
		valid bool
	}{
		{0, true},
		{50, true},
		{100, true},
		{-0.1, false},
		{100.1, false},
	}

	for _, tc := range cases {
		errs := v.Validate(progressPayload{Percentage: tc.value})
		if (len(errs) == 0) != tc.valid {
			t.Errorf("percentage %v: valid = %v, want %v (errs: %v)", tc.value, len(errs) == 0, tc.valid, errs)
		}
	}
}

func TestValidator_RegisterRequest(t *testing.T) {
	v := New()

	valid := models.RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
		Role:     "teacher",
	}
	if errs := v.Validate(valid); len(errs) != 0 {
		t.Errorf("Valid request rejected: %v", errs)
	}

	t.Run("BadEmail", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		errs := v.Validate(req)
		if len(errs) != 1 {
			t.Fatalf("Expected 1 error, got %d: %v", len(errs), errs)
		}
		if errs[0].Field != "Email" {
			t.Errorf("Error on field %s, want Email", errs[0].Field)
		}
	})

	t.Run("ShortPassword", func(t *testing.T) {
		req := valid
		req.Password = "short"
		if errs := v.Validate(req); len(errs) != 1 {
			t.Errorf("Expected 1 error, got %v", errs)
		}
	})

	t.Run("AdminRole", func(t *testing.T) {
		req := valid
		req.Role = "admin"
		errs := v.Validate(req)
		if len(errs) != 1 {
			t.Fatalf("Expected 1 error, got %v", errs)
		}
		if errs[0].Rule != "user_role" {
			t.Errorf("Expected user_role rule, got %s", errs[0].Rule)
		}
	})
}

func TestValidator_ContentCreateRequest(t *testing.T) {
	v := New()

	req := models.ContentCreateRequest{
		Title:       "Intro",
		ContentType: "video",
	}
	if errs := v.Validate(req); len(errs) != 0 {
		t.Errorf("Valid request rejected: %v", errs)
	}

	req.ContentType = "podcast"
	errs := v.Validate(req)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	if errs[0].Message != "must be video, document or quiz" {
		t.Errorf("Unexpected message: %s", errs[0].Message)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	single := ValidationErrors{{Field: "Email", Message: "must be a valid email address"}}
	if single.Error() != "validation failed: Email must be a valid email address" {
		t.Errorf("Unexpected message: %s", single.Error())
	}

	multi := ValidationErrors{{Field: "A"}, {Field: "B"}}
	if multi.Error() != "validation failed: 2 field errors" {
		t.Errorf("Unexpected message: %s", multi.Error())
	}
}
