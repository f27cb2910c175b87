package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
	"gorm.io/gorm"
)

// UserFilters defines filters for user queries
type UserFilters struct {
	Query  string // Search query for name or email
	Role   *models.UserRole
	Limit  int // Page size
	Offset int // Offset for pagination
}

// UserRepository interface for user operations
type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error

	// Verification
	GetByVerificationToken(ctx context.Context, tx *gorm.DB, token string) (*models.User, error)
	MarkVerified(ctx context.Context, tx *gorm.DB, id uint) error

	// List and search operations
	List(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, int64, error)

	// Validation and checks
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	HasRole(ctx context.Context, tx *gorm.DB, id uint, role models.UserRole) (bool, error)
}
