package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// UserPostgreSQL implements the UserRepository interface
type UserPostgreSQL struct {
	db *gorm.DB
}

// NewUserPostgreSQL creates a new user repository instance
func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (ur *UserPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ur.db
}

func (ur *UserPostgreSQL) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := ur.getDB(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (ur *UserPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	db := ur.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *UserPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := ur.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *UserPostgreSQL) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	db := ur.getDB(tx)
	var users []*models.User
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	return users, nil
}

func (ur *UserPostgreSQL) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := ur.getDB(tx)
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (ur *UserPostgreSQL) GetByVerificationToken(ctx context.Context, tx *gorm.DB, token string) (*models.User, error) {
	db := ur.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).Where("verification_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *UserPostgreSQL) MarkVerified(ctx context.Context, tx *gorm.DB, id uint) error {
	db := ur.getDB(tx)
	err := db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_verified":        true,
			"verification_token": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	return nil
}

func (ur *UserPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	db := ur.getDB(tx)
	query := db.WithContext(ctx).Model(&models.User{})

	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var users []*models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func (ur *UserPostgreSQL) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := ur.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return count > 0, nil
}

func (ur *UserPostgreSQL) HasRole(ctx context.Context, tx *gorm.DB, id uint, role models.UserRole) (bool, error) {
	db := ur.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND role = ?", id, role).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user role: %w", err)
	}
	return count > 0, nil
}
