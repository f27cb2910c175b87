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

type forumService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	validator     *validator.Validator
	notifications NotificationService
}

func NewForumService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, notifications NotificationService) ForumService {
	return &forumService{
		repo:          repo,
		db:            db,
		logger:        logger,
		validator:     v,
		notifications: notifications,
	}
}

// ===== POST OPERATIONS =====

func (s *forumService) CreatePost(ctx context.Context, courseID uint, req *CreatePostRequest, authorID uint) (*models.ForumPost, error) {
	s.logger.Info("Creating forum post", "course_id", courseID, "author_id", authorID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.repo.Course().GetByID(ctx, s.db, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if err := s.checkCourseAccess(ctx, courseID, authorID, "post"); err != nil {
		return nil, err
	}

	postType := req.Type
	if postType == "" {
		postType = models.PostDiscussion
	}

	post := &models.ForumPost{
		CourseID: courseID,
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Type:     postType,
	}

	if err := s.repo.Forum().CreatePost(ctx, s.db, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.notifyNewPost(ctx, course, post)

	s.logger.Info("Forum post created", "post_id", post.ID)
	return post, nil
}

func (s *forumService) GetPost(ctx context.Context, postID uint, userID uint) (*models.ForumPost, error) {
	post, err := s.repo.Forum().GetPostWithReplies(ctx, s.db, postID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if err := s.checkCourseAccess(ctx, post.CourseID, userID, "read_post"); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *forumService) UpdatePost(ctx context.Context, postID uint, req *UpdatePostRequest, userID uint) (*models.ForumPost, error) {
	s.logger.Info("Updating forum post", "post_id", postID, "user_id", userID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	post, err := s.repo.Forum().GetPostByID(ctx, s.db, postID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	isTeacher, err := s.repo.Course().IsOwner(ctx, s.db, post.CourseID, userID)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}

	if post.AuthorID != userID && !isTeacher {
		return nil, NewPermissionError(userID, postID, "post", "update", "not the author or course owner")
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	// Pinning and locking are moderation actions, teacher only.
	if req.IsPinned != nil || req.IsLocked != nil {
		if !isTeacher {
			return nil, NewPermissionError(userID, postID, "post", "moderate", "course owner required")
		}
		if req.IsPinned != nil {
			post.IsPinned = *req.IsPinned
		}
		if req.IsLocked != nil {
			post.IsLocked = *req.IsLocked
		}
	}

	if err := s.repo.Forum().UpdatePost(ctx, s.db, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.logger.Info("Forum post updated", "post_id", postID)
	return post, nil
}

func (s *forumService) DeletePost(ctx context.Context, postID uint, userID uint) error {
	s.logger.Info("Deleting forum post", "post_id", postID, "user_id", userID)

	post, err := s.repo.Forum().GetPostByID(ctx, s.db, postID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to get post: %w", err)
	}

	if post.AuthorID != userID {
		isTeacher, err := s.repo.Course().IsOwner(ctx, s.db, post.CourseID, userID)
		if err != nil {
			return fmt.Errorf("permission check failed: %w", err)
		}
		if !isTeacher {
			return NewPermissionError(userID, postID, "post", "delete", "not the author or course owner")
		}
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Forum().DeletePost(ctx, nil, postID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("Forum post deleted", "post_id", postID)
	return nil
}

func (s *forumService) ListPosts(ctx context.Context, courseID uint, filters repositories.ForumFilters, userID uint) (*PostListResponse, error) {
	if err := s.checkCourseAccess(ctx, courseID, userID, "list_posts"); err != nil {
		return nil, err
	}

	posts, total, err := s.repo.Forum().GetPostsByCourse(ctx, s.db, courseID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	page := 0
	if filters.Limit > 0 {
		page = filters.Offset / filters.Limit
	}

	return &PostListResponse{
		Posts: posts,
		Total: total,
		Page:  page,
		Size:  filters.Limit,
	}, nil
}

// ===== REPLY OPERATIONS =====

func (s *forumService) CreateReply(ctx context.Context, postID uint, req *CreateReplyRequest, authorID uint) (*models.ForumReply, error) {
	s.logger.Info("Creating forum reply", "post_id", postID, "author_id", authorID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	post, err := s.repo.Forum().GetPostByID(ctx, s.db, postID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if post.IsLocked {
		return nil, ErrPostLocked
	}

	if err := s.checkCourseAccess(ctx, post.CourseID, authorID, "reply"); err != nil {
		return nil, err
	}

	reply := &models.ForumReply{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
	}

	if err := s.repo.Forum().CreateReply(ctx, s.db, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	s.notifyNewReply(ctx, post, reply)

	s.logger.Info("Forum reply created", "reply_id", reply.ID)
	return reply, nil
}

func (s *forumService) DeleteReply(ctx context.Context, replyID uint, userID uint) error {
	s.logger.Info("Deleting forum reply", "reply_id", replyID, "user_id", userID)

	reply, err := s.repo.Forum().GetReplyByID(ctx, s.db, replyID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrReplyNotFound
		}
		return fmt.Errorf("failed to get reply: %w", err)
	}

	if reply.AuthorID != userID {
		post, err := s.repo.Forum().GetPostByID(ctx, s.db, reply.PostID)
		if err != nil {
			return fmt.Errorf("failed to get post: %w", err)
		}
		isTeacher, err := s.repo.Course().IsOwner(ctx, s.db, post.CourseID, userID)
		if err != nil {
			return fmt.Errorf("permission check failed: %w", err)
		}
		if !isTeacher {
			return NewPermissionError(userID, replyID, "reply", "delete", "not the author or course owner")
		}
	}

	if err := s.repo.Forum().DeleteReply(ctx, s.db, replyID); err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}

	s.logger.Info("Forum reply deleted", "reply_id", replyID)
	return nil
}

// ===== HELPERS =====

// checkCourseAccess passes for the course owner and enrolled students.
func (s *forumService) checkCourseAccess(ctx context.Context, courseID, userID uint, action string) error {
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
		return NewPermissionError(userID, courseID, "forum", action, "not enrolled")
	}
	return nil
}

// notifyNewPost fans out to every enrolled student except the author.
func (s *forumService) notifyNewPost(ctx context.Context, course *models.Course, post *models.ForumPost) {
	studentIDs, err := s.repo.Enrollment().GetStudentIDsByCourse(ctx, s.db, course.ID)
	if err != nil {
		s.logger.Warn("Failed to load enrolled students for notification", "course_id", course.ID, "error", err)
		return
	}

	recipients := make([]uint, 0, len(studentIDs)+1)
	for _, id := range studentIDs {
		if id != post.AuthorID {
			recipients = append(recipients, id)
		}
	}
	if course.TeacherID != post.AuthorID {
		recipients = append(recipients, course.TeacherID)
	}
	if len(recipients) == 0 {
		return
	}

	err = s.notifications.NotifyUsers(ctx, recipients, models.NotificationForumPost,
		fmt.Sprintf("New post in %s", course.Title),
		post.Title,
		map[string]interface{}{
			"course_id": course.ID,
			"post_id":   post.ID,
		})
	if err != nil {
		s.logger.Warn("Failed to send post notifications", "post_id", post.ID, "error", err)
	}
}

// notifyNewReply notifies the post author, unless they replied themselves.
func (s *forumService) notifyNewReply(ctx context.Context, post *models.ForumPost, reply *models.ForumReply) {
	if post.AuthorID == reply.AuthorID {
		return
	}

	err := s.notifications.NotifyUsers(ctx, []uint{post.AuthorID}, models.NotificationForumReply,
		fmt.Sprintf("New reply to %q", post.Title),
		reply.Content,
		map[string]interface{}{
			"post_id":  post.ID,
			"reply_id": reply.ID,
		})
	if err != nil {
		s.logger.Warn("Failed to send reply notification", "reply_id", reply.ID, "error", err)
	}
}
