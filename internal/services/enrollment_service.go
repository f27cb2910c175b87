package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"gorm.io/gorm"
)

type enrollmentService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewEnrollmentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, publisher events.EventPublisher) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		db:        db,
		logger:    logger,
		publisher: publisher,
	}
}

// ===== ENROLLMENT OPERATIONS =====

func (s *enrollmentService) Enroll(ctx context.Context, courseID, studentID uint) (*models.Enrollment, error) {
	s.logger.Info("Enrolling student", "course_id", courseID, "student_id", studentID)

	course, err := s.repo.Course().GetByID(ctx, s.db, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if !course.IsPublished {
		return nil, ErrCourseNotFound
	}

	// Friendly-path check. The unique index on (student_id, course_id) is the
	// authoritative guard; concurrent enrollments surface as duplicate-key
	// errors below.
	enrolled, err := s.repo.Enrollment().IsEnrolled(ctx, s.db, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Status:    models.EnrollmentActive,
	}

	if err := s.repo.Enrollment().Create(ctx, s.db, enrollment); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.publishEnrolled(ctx, enrollment)

	s.logger.Info("Student enrolled", "enrollment_id", enrollment.ID)
	return enrollment, nil
}

// ===== QUERIES =====

func (s *enrollmentService) GetStudentEnrollments(ctx context.Context, studentID uint, filters repositories.EnrollmentFilters) ([]*EnrollmentResponse, int64, error) {
	enrollments, total, err := s.repo.Enrollment().GetByStudent(ctx, s.db, studentID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enrollments: %w", err)
	}

	responses := make([]*EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		resp := &EnrollmentResponse{Enrollment: e}

		// Progress is informational here; missing aggregates render empty.
		progress, err := s.repo.Progress().GetCourseProgress(ctx, s.db, studentID, e.CourseID)
		if err != nil {
			s.logger.Warn("Failed to load course progress", "course_id", e.CourseID, "student_id", studentID, "error", err)
		} else {
			resp.Progress = progress
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}

func (s *enrollmentService) GetCourseEnrollments(ctx context.Context, courseID uint, filters repositories.EnrollmentFilters, userID uint) ([]*models.Enrollment, int64, error) {
	isOwner, err := s.repo.Course().IsOwner(ctx, s.db, courseID, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("permission check failed: %w", err)
	}
	if !isOwner {
		return nil, 0, NewPermissionError(userID, courseID, "course", "list_enrollments", "not the course owner")
	}

	enrollments, total, err := s.repo.Enrollment().GetByCourse(ctx, s.db, courseID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, total, nil
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, courseID, studentID uint) (bool, error) {
	return s.repo.Enrollment().IsEnrolled(ctx, s.db, studentID, courseID)
}

// publishEnrolled emits the enrollment event. Publish failures are logged
// only; the enrollment itself has already committed.
func (s *enrollmentService) publishEnrolled(ctx context.Context, enrollment *models.Enrollment) {
	event := events.NewEvent(events.EventStudentEnrolled, events.StudentEnrolledEvent{
		EnrollmentID: enrollment.ID,
		CourseID:     enrollment.CourseID,
		StudentID:    enrollment.StudentID,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish enrollment event", "enrollment_id", enrollment.ID, "error", err)
	}
}
