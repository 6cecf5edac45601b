package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/cristobal/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	FindByUser(ctx context.Context, userID uint) ([]models.Order, error)
	FindByIDForUser(ctx context.Context, orderID, userID uint) (*models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) error
	Count(ctx context.Context) (int64, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

// Create inserts the order and its Items through tx, which must be the
// caller's open transaction.
func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order for user %d: %w", order.UserID, err)
	}
	return nil
}

func (r *gormOrderRepository) FindByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByIDForUser returns nil when the order is missing or owned by someone
// else.
func (r *gormOrderRepository) FindByIDForUser(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}
	return &order, nil
}

func (r *gormOrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order

	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	userIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		userIDs = append(userIDs, o.UserID)
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Select("id", "username").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load order owners: %w", err)
	}

	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	for i := range orders {
		orders[i].Username = names[orders[i].UserID]
	}
	return orders, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update status of order %d: %w", orderID, result.Error)
	}
	if result.RowsAffected == 0 {
		// mysql reports unchanged rows as unaffected
		var exists int64
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).Count(&exists).Error; err != nil {
			return fmt.Errorf("failed to check order %d: %w", orderID, err)
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *gormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}
