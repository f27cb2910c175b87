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

type contentService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	validator     *validator.Validator
	business      *validator.BusinessValidator
	notifications NotificationService
}

func NewContentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, notifications NotificationService) ContentService {
	return &contentService{
		repo:          repo,
		db:            db,
		logger:        logger,
		validator:     v,
		business:      validator.NewBusinessValidator(v),
		notifications: notifications,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *contentService) Create(ctx context.Context, courseID uint, req *CreateContentRequest, userID uint) (*models.CourseContent, error) {
	s.logger.Info("Creating content", "course_id", courseID, "user_id", userID, "title", req.Title)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.getOwnedCourse(ctx, courseID, userID, "add_content")
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Content().NextDisplayOrder(ctx, s.db, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to determine display order: %w", err)
	}

	content := &models.CourseContent{
		CourseID:      courseID,
		Title:         req.Title,
		Description:   req.Description,
		ContentType:   req.ContentType,
		ContentURL:    req.ContentURL,
		VideoPublicID: req.VideoPublicID,
		VideoDuration: req.VideoDuration,
		DisplayOrder:  order,
		IsPublished:   req.IsPublished,
	}

	if err := s.repo.Content().Create(ctx, s.db, content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	if content.IsPublished {
		s.notifyNewContent(ctx, course, content)
	}

	s.logger.Info("Content created", "content_id", content.ID, "course_id", courseID)
	return content, nil
}

func (s *contentService) GetByID(ctx context.Context, id uint, userID uint) (*models.CourseContent, error) {
	content, err := s.repo.Content().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	if !content.IsPublished {
		isOwner, err := s.repo.Course().IsOwner(ctx, s.db, content.CourseID, userID)
		if err != nil {
			return nil, fmt.Errorf("permission check failed: %w", err)
		}
		if !isOwner {
			return nil, ErrContentNotFound
		}
	}

	return content, nil
}

func (s *contentService) Update(ctx context.Context, id uint, req *UpdateContentRequest, userID uint) (*models.CourseContent, error) {
	s.logger.Info("Updating content", "content_id", id, "user_id", userID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	content, err := s.repo.Content().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	course, err := s.getOwnedCourse(ctx, content.CourseID, userID, "update_content")
	if err != nil {
		return nil, err
	}

	wasPublished := content.IsPublished

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Description != nil {
		content.Description = req.Description
	}
	if req.ContentType != nil {
		content.ContentType = *req.ContentType
	}
	if req.ContentURL != nil {
		content.ContentURL = req.ContentURL
	}
	if req.VideoPublicID != nil {
		content.VideoPublicID = req.VideoPublicID
	}
	if req.VideoDuration != nil {
		content.VideoDuration = req.VideoDuration
	}
	if req.IsPublished != nil {
		content.IsPublished = *req.IsPublished
	}

	if err := s.repo.Content().Update(ctx, s.db, content); err != nil {
		return nil, fmt.Errorf("failed to update content: %w", err)
	}

	if !wasPublished && content.IsPublished {
		s.notifyNewContent(ctx, course, content)
	}

	s.logger.Info("Content updated", "content_id", id)
	return content, nil
}

func (s *contentService) Delete(ctx context.Context, id uint, userID uint) error {
	s.logger.Info("Deleting content", "content_id", id, "user_id", userID)

	content, err := s.repo.Content().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrContentNotFound
		}
		return fmt.Errorf("failed to get content: %w", err)
	}

	if _, err := s.getOwnedCourse(ctx, content.CourseID, userID, "delete_content"); err != nil {
		return err
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Content().Delete(ctx, nil, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	s.logger.Info("Content deleted", "content_id", id)
	return nil
}

// ===== LIST =====

func (s *contentService) ListByCourse(ctx context.Context, courseID uint, userID uint) ([]*models.CourseContent, error) {
	course, err := s.repo.Course().GetByID(ctx, s.db, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	// Owners see everything, everyone else only published items.
	filters := repositories.ContentFilters{PublishedOnly: course.TeacherID != userID}

	contents, err := s.repo.Content().GetByCourse(ctx, s.db, courseID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	return contents, nil
}

// ===== ORDERING =====

func (s *contentService) Reorder(ctx context.Context, courseID uint, req *ReorderContentRequest, userID uint) error {
	s.logger.Info("Reordering content", "course_id", courseID, "user_id", userID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	if _, err := s.getOwnedCourse(ctx, courseID, userID, "reorder_content"); err != nil {
		return err
	}

	contents, err := s.repo.Content().GetByCourse(ctx, s.db, courseID, repositories.ContentFilters{})
	if err != nil {
		return fmt.Errorf("failed to list content: %w", err)
	}

	existingIDs := make([]uint, 0, len(contents))
	for _, c := range contents {
		existingIDs = append(existingIDs, c.ID)
	}

	if errs := s.business.ValidateContentReorder(req.ContentIDs, existingIDs); len(errs) > 0 {
		return errs
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Content().Reorder(ctx, nil, courseID, req.ContentIDs)
	})
	if err != nil {
		return fmt.Errorf("failed to reorder content: %w", err)
	}

	s.logger.Info("Content reordered", "course_id", courseID)
	return nil
}

// ===== HELPERS =====

func (s *contentService) getOwnedCourse(ctx context.Context, courseID, userID uint, action string) (*models.Course, error) {
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

// notifyNewContent fans out to enrolled students. Failures are logged, never
// surfaced to the caller.
func (s *contentService) notifyNewContent(ctx context.Context, course *models.Course, content *models.CourseContent) {
	studentIDs, err := s.repo.Enrollment().GetStudentIDsByCourse(ctx, s.db, course.ID)
	if err != nil {
		s.logger.Warn("Failed to load enrolled students for notification", "course_id", course.ID, "error", err)
		return
	}
	if len(studentIDs) == 0 {
		return
	}

	err = s.notifications.NotifyUsers(ctx, studentIDs, models.NotificationNewContent,
		fmt.Sprintf("New content in %s", course.Title),
		fmt.Sprintf("%q was added to %s", content.Title, course.Title),
		map[string]interface{}{
			"course_id":  course.ID,
			"content_id": content.ID,
		})
	if err != nil {
		s.logger.Warn("Failed to send content notifications", "content_id", content.ID, "error", err)
	}
}
