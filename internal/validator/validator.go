package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with domain rules registered.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// Validate validates any struct against its tags. Returns ValidationErrors
// (never a bare error) so callers can render field-level messages.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// registerRules registers custom validation rules
func (v *Validator) registerRules() {
	// Progress percentage validation (0-100)
	v.validate.RegisterValidation("progress_percentage", func(fl validator.FieldLevel) bool {
		p := fl.Field().Float()
		return p >= 0 && p <= 100
	})

	// Title validation (1-200 characters)
	v.validate.RegisterValidation("course_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 1 && len(title) <= 200
	})

	// Description validation (max 5000 characters)
	v.validate.RegisterValidation("course_description", func(fl validator.FieldLevel) bool {
		desc := fl.Field().String()
		return len(desc) <= 5000
	})

	// Content type validation
	v.validate.RegisterValidation("content_type", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "video", "document", "quiz":
			return true
		}
		return false
	})

	// User role validation (admin is assigned manually, never via the API)
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "student", "teacher":
			return true
		}
		return false
	})

	// Max points validation (1-1000)
	v.validate.RegisterValidation("max_points", func(fl validator.FieldLevel) bool {
		points := fl.Field().Int()
		return points >= 1 && points <= 1000
	})
}

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// ToValidationErrors converts a validator error into ValidationErrors
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errors = append(errors, ValidationError{
				Field:   fe.Field(),
				Message: errorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return errors
	}

	return ValidationErrors{{Message: err.Error(), Rule: "unknown"}}
}

// errorMessage returns user-friendly error messages
func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "progress_percentage":
		return "must be between 0 and 100"
	case "course_title":
		return "must be between 1 and 200 characters"
	case "course_description":
		return "must not exceed 5000 characters"
	case "content_type":
		return "must be video, document or quiz"
	case "user_role":
		return "must be student or teacher"
	case "max_points":
		return "must be between 1 and 1000"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
