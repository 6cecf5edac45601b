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
)

// MaxLineQuantity caps the units of one product and size in a cart.
const MaxLineQuantity = 99

var ErrQuantityTooLarge = errors.New("quantity exceeds the per-line limit")

// CartLine is a session cart line priced against the current catalog.
type CartLine struct {
	Product   *models.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type CartView struct {
	Items    []CartLine      `json:"cart"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

type CartService struct {
	productRepo repositories.ProductRepositoryImpl
	shippingFee decimal.Decimal
}

func NewCartService(productRepo repositories.ProductRepositoryImpl, shippingFee decimal.Decimal) *CartService {
	return &CartService{
		productRepo: productRepo,
		shippingFee: shippingFee,
	}
}

// View prices lines with server-side prices. Lines whose product no longer
// exists are skipped, and an empty result carries no shipping.
func (s *CartService) View(ctx context.Context, lines []models.CartItem) (*CartView, error) {
	view := &CartView{Items: []CartLine{}, Subtotal: decimal.Zero}

	for _, line := range lines {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %d: %w", line.ProductID, err)
		}
		if product == nil {
			log.Printf("CartService.View: skipping missing product %d", line.ProductID)
			continue
		}

		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		lineTotal := calc.LineTotal(product.Price, qty)
		view.Items = append(view.Items, CartLine{
			Product:   product,
			Quantity:  qty,
			Size:      line.Size,
			LineTotal: lineTotal,
		})
		view.Subtotal = view.Subtotal.Add(lineTotal)
	}

	view.Shipping = calc.Shipping(len(view.Items), s.shippingFee)
	if len(view.Items) == 0 {
		view.Total = decimal.Zero
	} else {
		view.Total = calc.CalculateGrandTotal(view.Subtotal, view.Shipping)
	}
	return view, nil
}

// Add merges into an existing line with the same product and size, otherwise
// appends a new one. The input slice is not modified. A line never holds more
// than MaxLineQuantity units.
func (s *CartService) Add(lines []models.CartItem, productID uint, qty int, size string) ([]models.CartItem, error) {
	if qty < 1 {
		qty = 1
	}
	if qty > MaxLineQuantity {
		return nil, ErrQuantityTooLarge
	}

	out := make([]models.CartItem, len(lines), len(lines)+1)
	copy(out, lines)

	for i := range out {
		if out[i].SameLine(productID, size) {
			if out[i].Quantity > MaxLineQuantity-qty {
				return nil, ErrQuantityTooLarge
			}
			out[i].Quantity += qty
			return out, nil
		}
	}
	return append(out, models.CartItem{ProductID: productID, Quantity: qty, Size: size}), nil
}

func (s *CartService) Remove(lines []models.CartItem, productID uint, size string) []models.CartItem {
	out := make([]models.CartItem, 0, len(lines))
	for _, line := range lines {
		if !line.SameLine(productID, size) {
			out = append(out, line)
		}
	}
	return out
}

func (s *CartService) Count(lines []models.CartItem) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}
