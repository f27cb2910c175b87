package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
	"gorm.io/gorm"
)

type progressService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProgressService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) ProgressService {
	return &progressService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

// ===== PROGRESS UPDATES =====

// UpdateProgress upserts the (student, content) progress record and returns
// the refreshed course aggregate. Completion is derived, never client-set:
// a record is completed when its percentage reaches CompletionThreshold, and
// CompletedAt keeps its original value once set even if the percentage later
// regresses.
func (s *progressService) UpdateProgress(ctx context.Context, contentID uint, req *UpdateProgressRequest, studentID uint) (*ProgressUpdateResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	content, err := s.repo.Content().GetByID(ctx, s.db, contentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	// Progress writes are gated on enrollment; unlike read-path rendering,
	// a failed check here aborts the update.
	enrolled, err := s.repo.Enrollment().IsEnrolled(ctx, s.db, studentID, content.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	var record *models.StudentProgress
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		existing, err := txRepo.Progress().GetRecord(ctx, nil, studentID, contentID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to get progress record: %w", err)
		}

		if existing == nil {
			existing = &models.StudentProgress{
				StudentID: studentID,
				ContentID: contentID,
			}
		}

		existing.ProgressPercentage = req.ProgressPercentage
		if req.LastPosition != nil {
			existing.LastPosition = *req.LastPosition
		}
		// TotalTimeWatched is a cumulative value reported by the client, not a
		// delta; the latest report replaces the stored total.
		if req.TotalTimeWatched != nil {
			existing.TotalTimeWatched = *req.TotalTimeWatched
		}

		existing.IsCompleted = req.ProgressPercentage >= models.CompletionThreshold
		if existing.IsCompleted && existing.CompletedAt == nil {
			now := time.Now()
			existing.CompletedAt = &now
		}

		if existing.ID == 0 {
			if err := txRepo.Progress().Create(ctx, nil, existing); err != nil {
				return fmt.Errorf("failed to create progress record: %w", err)
			}
		} else {
			if err := txRepo.Progress().Update(ctx, nil, existing); err != nil {
				return fmt.Errorf("failed to update progress record: %w", err)
			}
		}

		record = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	aggregate, err := s.repo.Progress().GetCourseProgress(ctx, s.db, studentID, content.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute course progress: %w", err)
	}

	s.logger.Info("Progress updated",
		"student_id", studentID,
		"content_id", contentID,
		"percentage", record.ProgressPercentage,
		"completed", record.IsCompleted)

	return &ProgressUpdateResponse{
		Progress:       record,
		CourseProgress: aggregate,
	}, nil
}

// ===== PROGRESS QUERIES =====

func (s *progressService) GetCourseProgress(ctx context.Context, courseID, studentID uint) (*CourseProgressResponse, error) {
	exists, err := s.repo.Course().Exists(ctx, s.db, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	enrolled, err := s.repo.Enrollment().IsEnrolled(ctx, s.db, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	summary, err := s.repo.Progress().GetCourseProgress(ctx, s.db, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute course progress: %w", err)
	}

	contents, err := s.repo.Progress().GetContentProgress(ctx, s.db, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list content progress: %w", err)
	}

	return &CourseProgressResponse{
		CourseID: courseID,
		Summary:  summary,
		Contents: contents,
	}, nil
}

func (s *progressService) GetStudentOverview(ctx context.Context, studentID uint) ([]*models.CourseProgressSummary, error) {
	summaries, err := s.repo.Progress().GetStudentOverallProgress(ctx, s.db, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute student overview: %w", err)
	}
	return summaries, nil
}
