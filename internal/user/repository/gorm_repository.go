package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tair/population/internal/user/domain"
	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/database"
)

// GormUserRepository implements UserRepository interface using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user. Username and email clashes surface as field
// validation errors.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	db := r.db.WithContext(ctx)

	errs := apperror.NewValidationError()
	var count int64
	if err := db.Model(&domain.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		errs.Add("username", "A user with that username already exists.")
	}
	if err := db.Model(&domain.User{}).Where("LOWER(email) = ?", strings.ToLower(user.Email)).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		errs.Add("email", "user with this email already exists.")
	}
	if err := errs.OrNil(); err != nil {
		return err
	}

	if err := db.Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return apperror.FieldError("username", "A user with that username already exists.")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound("User", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByUsername retrieves a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound("User", 0)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
