package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
	"gorm.io/gorm"
)

type assignmentService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	validator     *validator.Validator
	business      *validator.BusinessValidator
	notifications NotificationService
}

func NewAssignmentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, notifications NotificationService) AssignmentService {
	return &assignmentService{
		repo:          repo,
		db:            db,
		logger:        logger,
		validator:     v,
		business:      validator.NewBusinessValidator(v),
		notifications: notifications,
	}
}

// ===== ASSIGNMENT CRUD =====

func (s *assignmentService) Create(ctx context.Context, courseID uint, req *CreateAssignmentRequest, userID uint) (*models.Assignment, error) {
	s.logger.Info("Creating assignment", "course_id", courseID, "user_id", userID, "title", req.Title)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.getOwnedCourse(ctx, courseID, userID, "create_assignment")
	if err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		MaxPoints:   req.MaxPoints,
		DueDate:     req.DueDate,
	}

	if err := s.repo.Assignment().Create(ctx, s.db, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.notifyNewAssignment(ctx, course, assignment)

	s.logger.Info("Assignment created", "assignment_id", assignment.ID)
	return assignment, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id uint, userID uint) (*models.Assignment, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if err := s.checkCourseAccess(ctx, assignment.CourseID, userID, "view_assignment"); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, req *UpdateAssignmentRequest, userID uint) (*models.Assignment, error) {
	s.logger.Info("Updating assignment", "assignment_id", id, "user_id", userID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if _, err := s.getOwnedCourse(ctx, assignment.CourseID, userID, "update_assignment"); err != nil {
		return nil, err
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = req.Description
	}
	if req.Type != nil {
		assignment.Type = *req.Type
	}
	if req.MaxPoints != nil {
		assignment.MaxPoints = *req.MaxPoints
	}
	if req.DueDate != nil {
		assignment.DueDate = req.DueDate
	}

	if err := s.repo.Assignment().Update(ctx, s.db, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	s.logger.Info("Assignment updated", "assignment_id", id)
	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint, userID uint) error {
	s.logger.Info("Deleting assignment", "assignment_id", id, "user_id", userID)

	assignment, err := s.repo.Assignment().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	if _, err := s.getOwnedCourse(ctx, assignment.CourseID, userID, "delete_assignment"); err != nil {
		return err
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Assignment().Delete(ctx, nil, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info("Assignment deleted", "assignment_id", id)
	return nil
}

func (s *assignmentService) ListByCourse(ctx context.Context, courseID uint, userID uint) ([]*models.Assignment, error) {
	if err := s.checkCourseAccess(ctx, courseID, userID, "list_assignments"); err != nil {
		return nil, err
	}

	assignments, err := s.repo.Assignment().GetByCourse(ctx, s.db, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// ===== SUBMISSIONS =====

func (s *assignmentService) Submit(ctx context.Context, assignmentID uint, req *CreateSubmissionRequest, studentID uint) (*models.Submission, error) {
	s.logger.Info("Submitting assignment", "assignment_id", assignmentID, "student_id", studentID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, s.db, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	enrolled, err := s.repo.Enrollment().IsEnrolled(ctx, s.db, studentID, assignment.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	if errs := s.business.ValidateSubmission(assignment, req.Content, req.FileURL); len(errs) > 0 {
		return nil, errs
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      req.Content,
		Status:       models.SubmissionSubmitted,
	}
	if req.FileURL != "" {
		submission.FileURL = &req.FileURL
	}

	if err := s.repo.Submission().Create(ctx, s.db, submission); err != nil {
		// One submission per (assignment, student), enforced by unique index.
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info("Submission created", "submission_id", submission.ID)
	return submission, nil
}

func (s *assignmentService) GetSubmission(ctx context.Context, submissionID uint, userID uint) (*SubmissionResponse, error) {
	submission, err := s.repo.Submission().GetByID(ctx, s.db, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, s.db, submission.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if submission.StudentID != userID {
		isOwner, err := s.repo.Course().IsOwner(ctx, s.db, assignment.CourseID, userID)
		if err != nil {
			return nil, fmt.Errorf("permission check failed: %w", err)
		}
		if !isOwner {
			return nil, NewPermissionError(userID, submissionID, "submission", "read", "not the submitter or course owner")
		}
	}

	return &SubmissionResponse{
		Submission:      submission,
		AssignmentTitle: assignment.Title,
		MaxPoints:       assignment.MaxPoints,
	}, nil
}

func (s *assignmentService) ListSubmissions(ctx context.Context, assignmentID uint, userID uint) ([]*models.Submission, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, s.db, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if _, err := s.getOwnedCourse(ctx, assignment.CourseID, userID, "list_submissions"); err != nil {
		return nil, err
	}

	submissions, err := s.repo.Submission().GetByAssignment(ctx, s.db, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (s *assignmentService) GetStudentSubmissions(ctx context.Context, studentID uint) ([]*SubmissionResponse, error) {
	submissions, err := s.repo.Submission().GetByStudent(ctx, s.db, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	responses := make([]*SubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		resp := &SubmissionResponse{Submission: sub}
		if sub.Assignment != nil {
			resp.AssignmentTitle = sub.Assignment.Title
			resp.MaxPoints = sub.Assignment.MaxPoints
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// ===== GRADING =====

func (s *assignmentService) Grade(ctx context.Context, submissionID uint, req *GradeSubmissionRequest, graderID uint) (*models.Submission, error) {
	s.logger.Info("Grading submission", "submission_id", submissionID, "grader_id", graderID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	submission, err := s.repo.Submission().GetByID(ctx, s.db, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, s.db, submission.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if _, err := s.getOwnedCourse(ctx, assignment.CourseID, graderID, "grade"); err != nil {
		return nil, err
	}

	if errs := s.business.ValidateGrade(req.Grade, assignment); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.Submission().Grade(ctx, s.db, submissionID, req.Grade, req.Feedback, graderID); err != nil {
		return nil, fmt.Errorf("failed to grade submission: %w", err)
	}

	graded, err := s.repo.Submission().GetByID(ctx, s.db, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload submission: %w", err)
	}

	s.notifyGraded(ctx, graded, assignment)

	s.logger.Info("Submission graded", "submission_id", submissionID, "grade", req.Grade)
	return graded, nil
}

// ===== HELPERS =====

func (s *assignmentService) getOwnedCourse(ctx context.Context, courseID, userID uint, action string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, s.db, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course.TeacherID != userID {
		return nil, NewPermissionError(userID, courseID, "course", action, "not the course owner")
	}
	return course, nil
}

// checkCourseAccess passes for the course owner and enrolled students.
func (s *assignmentService) checkCourseAccess(ctx context.Context, courseID, userID uint, action string) error {
	isOwner, err := s.repo.Course().IsOwner(ctx, s.db, courseID, userID)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if isOwner {
		return nil
	}

	enrolled, err := s.repo.Enrollment().IsEnrolled(ctx, s.db, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return NewPermissionError(userID, courseID, "course", action, "not enrolled")
	}
	return nil
}

func (s *assignmentService) notifyNewAssignment(ctx context.Context, course *models.Course, assignment *models.Assignment) {
	studentIDs, err := s.repo.Enrollment().GetStudentIDsByCourse(ctx, s.db, course.ID)
	if err != nil {
		s.logger.Warn("Failed to load enrolled students for notification", "course_id", course.ID, "error", err)
		return
	}
	if len(studentIDs) == 0 {
		return
	}

	err = s.notifications.NotifyUsers(ctx, studentIDs, models.NotificationNewAssignment,
		fmt.Sprintf("New assignment in %s", course.Title),
		fmt.Sprintf("%q is due and waiting for your submission", assignment.Title),
		map[string]interface{}{
			"course_id":     course.ID,
			"assignment_id": assignment.ID,
		})
	if err != nil {
		s.logger.Warn("Failed to send assignment notifications", "assignment_id", assignment.ID, "error", err)
	}
}

func (s *assignmentService) notifyGraded(ctx context.Context, submission *models.Submission, assignment *models.Assignment) {
	grade := 0.0
	if submission.Grade != nil {
		grade = *submission.Grade
	}

	err := s.notifications.NotifyUsers(ctx, []uint{submission.StudentID}, models.NotificationGradePosted,
		fmt.Sprintf("Grade posted for %s", assignment.Title),
		fmt.Sprintf("You scored %.1f out of %d points", grade, assignment.MaxPoints),
		map[string]interface{}{
			"assignment_id": assignment.ID,
			"submission_id": submission.ID,
			"grade":         grade,
		})
	if err != nil {
		s.logger.Warn("Failed to send grade notification", "submission_id", submission.ID, "error", err)
	}
}
