package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/Rakhulsr/cristobal/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingCheckoutData = errors.New("address and payment method are required")
	ErrProductNotFound     = errors.New("product not found")
	ErrAddressNotFound     = errors.New("address not found")
	ErrPaymentNotFound     = errors.New("payment method not found")
)

type CheckoutService struct {
	db          *gorm.DB
	shippingFee decimal.Decimal
}

func NewCheckoutService(db *gorm.DB, shippingFee decimal.Decimal) *CheckoutService {
	return &CheckoutService{
		db:          db,
		shippingFee: shippingFee,
	}
}

// PlaceOrder turns the cart lines into an order inside a single transaction.
// Prices always come from the catalog; nothing is persisted unless every step
// succeeds.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID, addressID, paymentID uint, lines []models.CartItem) (order *models.Order, err error) {
	if addressID == 0 || paymentID == 0 {
		return nil, ErrMissingCheckoutData
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("CheckoutService.PlaceOrder: rolling back after panic: %v", r)
			tx.Rollback()
			panic(r)
		}
		if err != nil {
			tx.Rollback()
		}
	}()

	address, err := repositories.NewGormAddressRepository(tx).FindByIDForUser(ctx, addressID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	payment, err := repositories.NewGormPaymentMethodRepository(tx).FindByIDForUser(ctx, paymentID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	productRepo := repositories.NewProductRepository(tx)
	items := make([]models.OrderItem, 0, len(lines))
	subtotal := decimal.Zero

	for _, line := range lines {
		product, err := productRepo.GetForOrder(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to get product %d: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: ID %d", ErrProductNotFound, line.ProductID)
		}

		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		item := models.OrderItem{
			ProductID:     product.ID,
			Quantity:      qty,
			Price:         product.Price,
			Size:          line.Size,
			ProductNameTR: product.NameTR,
			ProductNameEN: product.NameEN,
			CoverImageURL: product.CoverImageURL,
		}
		subtotal = subtotal.Add(item.LineTotal())
		items = append(items, item)
	}

	order = &models.Order{
		UserID:      userID,
		TotalAmount: calc.CalculateGrandTotal(subtotal, s.shippingFee),
		Status:      models.OrderStatusPreparing,
		AddressID:   address.ID,
		PaymentID:   payment.ID,
		Items:       items,
	}

	if err = repositories.NewOrderRepository(tx).Create(ctx, tx, order); err != nil {
		return nil, err
	}

	if err = tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	log.Printf("CheckoutService.PlaceOrder: order %d created for user %d (%d items, total %s)", order.ID, userID, len(items), order.TotalAmount.StringFixed(2))
	return order, nil
}
