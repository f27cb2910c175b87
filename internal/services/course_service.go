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

type courseService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	business  *validator.BusinessValidator
}

func NewCourseService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		business:  validator.NewBusinessValidator(v),
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest, teacherID uint) (*CourseResponse, error) {
	s.logger.Info("Creating course", "teacher_id", teacherID, "title", req.Title)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	isTeacher, err := s.repo.User().HasRole(ctx, s.db, teacherID, models.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !isTeacher {
		return nil, NewPermissionError(teacherID, 0, "course", "create", "teacher role required")
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		TeacherID:    teacherID,
		Category:     &req.Category,
		ThumbnailURL: req.ThumbnailURL,
		Price:        req.Price,
	}
	if req.DurationWeeks > 0 {
		weeks := req.DurationWeeks
		course.DurationWeeks = &weeks
	}

	if err := s.repo.Course().Create(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID)
	return s.GetByID(ctx, course.ID, teacherID)
}

func (s *courseService) GetByID(ctx context.Context, id uint, userID uint) (*CourseResponse, error) {
	course, err := s.repo.Course().GetByIDWithTeacher(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	// Unpublished courses are only visible to their owner.
	if !course.IsPublished && course.TeacherID != userID {
		return nil, ErrCourseNotFound
	}

	return s.buildCourseResponse(ctx, course, userID), nil
}

func (s *courseService) Update(ctx context.Context, id uint, req *UpdateCourseRequest, userID uint) (*CourseResponse, error) {
	s.logger.Info("Updating course", "course_id", id, "user_id", userID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.getOwnedCourse(ctx, id, userID, "update")
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Category != nil {
		course.Category = req.Category
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = req.ThumbnailURL
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.DurationWeeks != nil {
		course.DurationWeeks = req.DurationWeeks
	}

	if req.IsPublished != nil && *req.IsPublished && !course.IsPublished {
		if err := s.checkPublishable(ctx, course); err != nil {
			return nil, err
		}
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := s.repo.Course().Update(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.Info("Course updated", "course_id", id)
	return s.GetByID(ctx, id, userID)
}

func (s *courseService) Delete(ctx context.Context, id uint, userID uint) error {
	s.logger.Info("Deleting course", "course_id", id, "user_id", userID)

	if _, err := s.getOwnedCourse(ctx, id, userID, "delete"); err != nil {
		return err
	}

	// Cascade across contents, progress, enrollments, assignments and forum.
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Course().Delete(ctx, nil, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info("Course deleted", "course_id", id)
	return nil
}

// ===== LIST AND SEARCH =====

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters, userID uint) (*CourseListResponse, error) {
	// Catalog listing only exposes published courses.
	published := true
	filters.IsPublished = &published

	courses, total, err := s.repo.Course().List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return s.buildCourseListResponse(ctx, courses, total, filters, userID), nil
}

func (s *courseService) GetByTeacher(ctx context.Context, teacherID uint, filters repositories.CourseFilters) (*CourseListResponse, error) {
	courses, total, err := s.repo.Course().GetByTeacher(ctx, s.db, teacherID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher courses: %w", err)
	}

	return s.buildCourseListResponse(ctx, courses, total, filters, teacherID), nil
}

// ===== STATUS MANAGEMENT =====

func (s *courseService) Publish(ctx context.Context, id uint, userID uint) error {
	s.logger.Info("Publishing course", "course_id", id, "user_id", userID)

	course, err := s.getOwnedCourse(ctx, id, userID, "publish")
	if err != nil {
		return err
	}
	if course.IsPublished {
		return nil
	}

	if err := s.checkPublishable(ctx, course); err != nil {
		return err
	}

	course.IsPublished = true
	if err := s.repo.Course().Update(ctx, s.db, course); err != nil {
		return fmt.Errorf("failed to publish course: %w", err)
	}

	s.logger.Info("Course published", "course_id", id)
	return nil
}

// ===== STATISTICS =====

func (s *courseService) GetStats(ctx context.Context, id uint, userID uint) (*repositories.CourseStats, error) {
	if _, err := s.getOwnedCourse(ctx, id, userID, "view_stats"); err != nil {
		return nil, err
	}

	stats, err := s.repo.Course().GetStats(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course stats: %w", err)
	}
	return stats, nil
}

// ===== PERMISSION CHECKS =====

func (s *courseService) CanEdit(ctx context.Context, courseID, userID uint) (bool, error) {
	return s.repo.Course().IsOwner(ctx, s.db, courseID, userID)
}

// ===== HELPERS =====

func (s *courseService) getOwnedCourse(ctx context.Context, id, userID uint, action string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if course.TeacherID != userID {
		return nil, NewPermissionError(userID, id, "course", action, "not the course owner")
	}
	return course, nil
}

func (s *courseService) checkPublishable(ctx context.Context, course *models.Course) error {
	contentCount, err := s.repo.Content().CountPublished(ctx, s.db, course.ID)
	if err != nil {
		return fmt.Errorf("failed to count course content: %w", err)
	}
	if errs := s.business.ValidateCoursePublish(course, contentCount); len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *courseService) buildCourseResponse(ctx context.Context, course *models.Course, userID uint) *CourseResponse {
	resp := &CourseResponse{
		Course:  course,
		CanEdit: course.TeacherID == userID,
	}

	if count, err := s.repo.Enrollment().CountByCourse(ctx, s.db, course.ID); err == nil {
		resp.EnrollmentCount = count
	} else {
		s.logger.Warn("Failed to count enrollments", "course_id", course.ID, "error", err)
	}

	if count, err := s.repo.Content().CountPublished(ctx, s.db, course.ID); err == nil {
		resp.ContentCount = count
	} else {
		s.logger.Warn("Failed to count content", "course_id", course.ID, "error", err)
	}

	// Informational flag on the read path; render as not enrolled on error.
	if userID != 0 {
		enrolled, err := s.repo.Enrollment().IsEnrolled(ctx, s.db, userID, course.ID)
		if err != nil {
			s.logger.Warn("Failed to check enrollment", "course_id", course.ID, "user_id", userID, "error", err)
		}
		resp.IsEnrolled = enrolled
	}

	return resp
}

func (s *courseService) buildCourseListResponse(ctx context.Context, courses []*models.Course, total int64, filters repositories.CourseFilters, userID uint) *CourseListResponse {
	courseIDs := make([]uint, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	counts, err := s.repo.Course().GetEnrollmentCounts(ctx, s.db, courseIDs)
	if err != nil {
		s.logger.Warn("Failed to batch enrollment counts", "error", err)
		counts = map[uint]int64{}
	}

	responses := make([]*CourseResponse, 0, len(courses))
	for _, c := range courses {
		resp := &CourseResponse{
			Course:          c,
			EnrollmentCount: counts[c.ID],
			CanEdit:         c.TeacherID == userID,
		}
		if userID != 0 {
			enrolled, err := s.repo.Enrollment().IsEnrolled(ctx, s.db, userID, c.ID)
			if err != nil {
				s.logger.Warn("Failed to check enrollment", "course_id", c.ID, "user_id", userID, "error", err)
			}
			resp.IsEnrolled = enrolled
		}
		responses = append(responses, resp)
	}

	page := 0
	if filters.Limit > 0 {
		page = filters.Offset / filters.Limit
	}

	return &CourseListResponse{
		Courses: responses,
		Total:   total,
		Page:    page,
		Size:    filters.Limit,
	}
}
