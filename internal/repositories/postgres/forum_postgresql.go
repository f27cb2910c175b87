package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// ForumPostgreSQL implements the ForumRepository interface
type ForumPostgreSQL struct {
	db *gorm.DB
}

// NewForumPostgreSQL creates a new forum repository instance
func NewForumPostgreSQL(db *gorm.DB) repositories.ForumRepository {
	return &ForumPostgreSQL{db: db}
}

func (fr *ForumPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return fr.db
}

func (fr *ForumPostgreSQL) CreatePost(ctx context.Context, tx *gorm.DB, post *models.ForumPost) error {
	db := fr.getDB(tx)
	if err := db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create forum post: %w", err)
	}
	return nil
}

func (fr *ForumPostgreSQL) GetPostByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ForumPost, error) {
	db := fr.getDB(tx)
	var post models.ForumPost
	if err := db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (fr *ForumPostgreSQL) GetPostWithReplies(ctx context.Context, tx *gorm.DB, id uint) (*models.ForumPost, error) {
	db := fr.getDB(tx)
	var post models.ForumPost
	err := db.WithContext(ctx).
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("forum_replies.created_at ASC")
		}).
		Preload("Replies.Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (fr *ForumPostgreSQL) UpdatePost(ctx context.Context, tx *gorm.DB, post *models.ForumPost) error {
	db := fr.getDB(tx)
	if err := db.WithContext(ctx).Save(post).Error; err != nil {
		return fmt.Errorf("failed to update forum post: %w", err)
	}
	return nil
}

func (fr *ForumPostgreSQL) DeletePost(ctx context.Context, tx *gorm.DB, id uint) error {
	db := fr.getDB(tx)
	if err := db.WithContext(ctx).Where("post_id = ?", id).Delete(&models.ForumReply{}).Error; err != nil {
		return fmt.Errorf("failed to delete forum replies: %w", err)
	}
	if err := db.WithContext(ctx).Delete(&models.ForumPost{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete forum post: %w", err)
	}
	return nil
}

func (fr *ForumPostgreSQL) CreateReply(ctx context.Context, tx *gorm.DB, reply *models.ForumReply) error {
	db := fr.getDB(tx)
	if err := db.WithContext(ctx).Create(reply).Error; err != nil {
		return fmt.Errorf("failed to create forum reply: %w", err)
	}
	return nil
}

func (fr *ForumPostgreSQL) GetReplyByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ForumReply, error) {
	db := fr.getDB(tx)
	var reply models.ForumReply
	if err := db.WithContext(ctx).First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (fr *ForumPostgreSQL) DeleteReply(ctx context.Context, tx *gorm.DB, id uint) error {
	db := fr.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.ForumReply{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete forum reply: %w", err)
	}
	return nil
}

func (fr *ForumPostgreSQL) GetPostsByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters repositories.ForumFilters) ([]*repositories.PostWithReplyCount, int64, error) {
	db := fr.getDB(tx)
	query := db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("forum_posts.course_id = ?", courseID)

	if filters.Type != nil {
		query = query.Where("forum_posts.type = ?", *filters.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count forum posts: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var posts []*repositories.PostWithReplyCount
	err := query.
		Select("forum_posts.*, (SELECT COUNT(*) FROM forum_replies fr WHERE fr.post_id = forum_posts.id) as reply_count").
		Preload("Author").
		Order("forum_posts.is_pinned DESC, forum_posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get forum posts: %w", err)
	}

	return posts, total, nil
}

func (fr *ForumPostgreSQL) CountPostsByCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	db := fr.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count forum posts: %w", err)
	}
	return count, nil
}
