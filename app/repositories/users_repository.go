package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/models"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already in use")

type UserRepositoryImpl interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, newPassword string) error
	EnsureAdmin(ctx context.Context, username, email, password string) (created bool, err error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepositoryImpl {
	return &userRepository{db}
}

// Create hashes user.Password in place before inserting.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))

	existing, err := r.FindByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hashPass, err := helpers.HashPassword(user.Password)
	if err != nil {
		log.Printf("Failed to hash password for user %s: %v", user.Email, err)
		return fmt.Errorf("failed to hash password for %s: %w", user.Email, err)
	}
	user.Password = hashPass

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user %s: %w", user.Email, err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(strings.ToLower(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password for user %d: %w", userID, err)
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password", hash)
	if result.Error != nil {
		return fmt.Errorf("failed to update password for user %d: %w", userID, result.Error)
	}
	return nil
}

// EnsureAdmin creates the admin account or resets an existing one's password
// and role.
func (r *userRepository) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	existing, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	if existing == nil {
		admin := &models.User{Username: username, Email: email, Password: password, Role: models.RoleAdmin}
		if err := r.Create(ctx, admin); err != nil {
			return false, err
		}
		return true, nil
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}
	err = r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
		"password": hash,
		"role":     models.RoleAdmin,
	}).Error
	if err != nil {
		return false, fmt.Errorf("failed to reset admin %s: %w", email, err)
	}
	return false, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
