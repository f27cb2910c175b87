package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/validator"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func newAuthTestService(repo *mockRepository) AuthService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAuthService(repo, nil, logger, validator.New(), testJWTSecret, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	repo := &mockRepository{}

	var created *models.User
	repo.user.CreateFn = func(ctx context.Context, tx *gorm.DB, user *models.User) error {
		created = user
		user.ID = 1
		return nil
	}

	service := newAuthTestService(repo)

	user, err := service.Register(context.Background(), &RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
		Role:     "student",
	})
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	if user.Role != models.RoleStudent {
		t.Errorf("Expected role student, got %s", user.Role)
	}
	if created.Password == "correct-horse" {
		t.Error("Password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("correct-horse")); err != nil {
		t.Errorf("Stored hash does not match the password: %v", err)
	}
	if created.VerificationToken == nil || *created.VerificationToken == "" {
		t.Error("Expected a verification token to be issued")
	}
	if created.IsVerified {
		t.Error("New users must start unverified")
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	repo := &mockRepository{
		user: mockUserRepo{
			ExistsByEmailFn: func(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
				return true, nil
			},
		},
	}

	service := newAuthTestService(repo)

	_, err := service.Register(context.Background(), &RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
		Role:     "student",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_DuplicateKeyRace(t *testing.T) {
	repo := &mockRepository{
		user: mockUserRepo{
			CreateFn: func(ctx context.Context, tx *gorm.DB, user *models.User) error {
				return gorm.ErrDuplicatedKey
			},
		},
	}

	service := newAuthTestService(repo)

	_, err := service.Register(context.Background(), &RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
		Role:     "student",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken for duplicate insert, got %v", err)
	}
}

func TestAuthService_Register_RejectsAdminRole(t *testing.T) {
	service := newAuthTestService(&mockRepository{})

	// Admin accounts are provisioned manually, never via self-registration.
	_, err := service.Register(context.Background(), &RegisterRequest{
		FullName: "Eve",
		Email:    "eve@example.com",
		Password: "correct-horse",
		Role:     "admin",
	})
	if err == nil {
		t.Fatal("Expected validation error for admin role")
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Errorf("Expected ValidationErrors, got %T", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	repo := &mockRepository{
		user: mockUserRepo{
			GetByEmailFn: func(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
				return &models.User{
					ID:         9,
					Email:      email,
					Password:   string(hash),
					Role:       models.RoleTeacher,
					IsVerified: true,
				}, nil
			},
		},
	}

	service := newAuthTestService(repo)

	resp, err := service.Login(context.Background(), &LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Expected a signed token")
	}
	if resp.ExpiresAt.Before(time.Now()) {
		t.Error("Token expiry should be in the future")
	}

	claims, err := ParseToken(resp.Token, testJWTSecret)
	if err != nil {
		t.Fatalf("Failed to parse issued token: %v", err)
	}
	if claims.UserID != 9 {
		t.Errorf("Claims carry user_id %d, want 9", claims.UserID)
	}
	if claims.Role != models.RoleTeacher {
		t.Errorf("Claims carry role %s, want teacher", claims.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)

	repo := &mockRepository{
		user: mockUserRepo{
			GetByEmailFn: func(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
				return &models.User{ID: 9, Email: email, Password: string(hash), IsVerified: true}, nil
			},
		},
	}

	service := newAuthTestService(repo)

	_, err := service.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	service := newAuthTestService(&mockRepository{})

	_, err := service.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Unverified(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)

	repo := &mockRepository{
		user: mockUserRepo{
			GetByEmailFn: func(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
				return &models.User{ID: 9, Email: email, Password: string(hash), IsVerified: false}, nil
			},
		},
	}

	service := newAuthTestService(repo)

	_, err := service.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	if !errors.Is(err, ErrNotVerified) {
		t.Errorf("Expected ErrNotVerified, got %v", err)
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	var verifiedID uint
	repo := &mockRepository{
		user: mockUserRepo{
			GetByVerificationTokenFn: func(ctx context.Context, tx *gorm.DB, token string) (*models.User, error) {
				return &models.User{ID: 4}, nil
			},
			MarkVerifiedFn: func(ctx context.Context, tx *gorm.DB, id uint) error {
				verifiedID = id
				return nil
			},
		},
	}

	service := newAuthTestService(repo)

	if err := service.VerifyEmail(context.Background(), "some-token"); err != nil {
		t.Fatalf("Failed to verify email: %v", err)
	}
	if verifiedID != 4 {
		t.Errorf("Verified user %d, want 4", verifiedID)
	}
}

func TestAuthService_VerifyEmail_InvalidToken(t *testing.T) {
	service := newAuthTestService(&mockRepository{})

	err := service.VerifyEmail(context.Background(), "bogus")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	repo := &mockRepository{
		user: mockUserRepo{
			GetByEmailFn: func(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
				return &models.User{ID: 9, Email: email, Password: string(hash), IsVerified: true}, nil
			},
		},
	}

	service := newAuthTestService(repo)
	resp, err := service.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseToken(resp.Token, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not-a-jwt", testJWTSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}
