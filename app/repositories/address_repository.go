package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Rakhulsr/cristobal/app/models"
	"gorm.io/gorm"
)

type AddressRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Address, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*models.Address, error)
	Create(ctx context.Context, address *models.Address) error
	DeleteForUser(ctx context.Context, id, userID uint) error
}

type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) ListByUser(ctx context.Context, userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&addresses).Error; err != nil {
		log.Printf("GormAddressRepository: Failed to find addresses for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to find addresses by user ID: %w", err)
	}
	return addresses, nil
}

func (r *GormAddressRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("GormAddressRepository: Failed to find address by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to find address by ID: %w", err)
	}
	return &address, nil
}

func (r *GormAddressRepository) Create(ctx context.Context, address *models.Address) error {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		log.Printf("GormAddressRepository: Failed to create address for user %d: %v", address.UserID, err)
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

// DeleteForUser is a no-op when the address belongs to another user.
func (r *GormAddressRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{}).Error; err != nil {
		log.Printf("GormAddressRepository: Failed to delete address %d: %v", id, err)
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}
