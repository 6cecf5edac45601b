package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Rakhulsr/cristobal/app/models"
	"gorm.io/gorm"
)

type PaymentMethodRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.PaymentMethod, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*models.PaymentMethod, error)
	Create(ctx context.Context, method *models.PaymentMethod) error
	DeleteForUser(ctx context.Context, id, userID uint) error
}

type GormPaymentMethodRepository struct {
	db *gorm.DB
}

func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

func (r *GormPaymentMethodRepository) ListByUser(ctx context.Context, userID uint) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&methods).Error; err != nil {
		log.Printf("GormPaymentMethodRepository: Failed to list payment methods for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

func (r *GormPaymentMethodRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find payment method %d: %w", id, err)
	}
	return &method, nil
}

// Create masks CardNumberMasked in place, so callers may pass the raw number.
func (r *GormPaymentMethodRepository) Create(ctx context.Context, method *models.PaymentMethod) error {
	method.CardNumberMasked = models.MaskCardNumber(method.CardNumberMasked)
	if err := r.db.WithContext(ctx).Create(method).Error; err != nil {
		log.Printf("GormPaymentMethodRepository: Failed to create payment method for user %d: %v", method.UserID, err)
		return fmt.Errorf("failed to create payment method: %w", err)
	}
	return nil
}

func (r *GormPaymentMethodRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.PaymentMethod{}).Error; err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	return nil
}
