package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
	"gorm.io/gorm"
)

// PostWithReplyCount decorates a post with its reply count for list views.
type PostWithReplyCount struct {
	models.ForumPost
	ReplyCount int64 `json:"reply_count"`
}

// ForumRepository interface for forum post and reply operations
type ForumRepository interface {
	// Post operations
	CreatePost(ctx context.Context, tx *gorm.DB, post *models.ForumPost) error
	GetPostByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ForumPost, error)
	GetPostWithReplies(ctx context.Context, tx *gorm.DB, id uint) (*models.ForumPost, error)
	UpdatePost(ctx context.Context, tx *gorm.DB, post *models.ForumPost) error
	DeletePost(ctx context.Context, tx *gorm.DB, id uint) error

	// Reply operations
	CreateReply(ctx context.Context, tx *gorm.DB, reply *models.ForumReply) error
	GetReplyByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ForumReply, error)
	DeleteReply(ctx context.Context, tx *gorm.DB, id uint) error

	// Query operations
	GetPostsByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters ForumFilters) ([]*PostWithReplyCount, int64, error)
	CountPostsByCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error)
}
