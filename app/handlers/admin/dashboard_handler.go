package admin

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/Rakhulsr/cristobal/app/services"
	"github.com/Rakhulsr/cristobal/app/utils/format"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render      *render.Render
	validator   *validator.Validate
	productRepo repositories.ProductRepositoryImpl
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepositoryImpl
	catalogSvc  *services.CatalogService
}

func NewAdminHandler(
	render *render.Render,
	validator *validator.Validate,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepositoryImpl,
	catalogSvc *services.CatalogService,
) *AdminHandler {
	return &AdminHandler{
		render:      render,
		validator:   validator,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		catalogSvc:  catalogSvc,
	}
}

type adminProduct struct {
	models.Product
	FirstImage     string `json:"first_image"`
	PriceFormatted string `json:"price_formatted"`
}

type adminOrder struct {
	models.Order
	TotalFormatted string `json:"total_formatted"`
}

type dashboardStats struct {
	Users    int64 `json:"users"`
	Products int64 `json:"products"`
	Orders   int64 `json:"orders"`
}

// GetDashboardData feeds the admin panel: every product with its first
// gallery image and sizes, every order with its owner and items.
func (h *AdminHandler) GetDashboardData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.productRepo.ListWithDetails(ctx)
	if err != nil {
		log.Printf("AdminHandler.GetDashboardData: products: %v", err)
		products = nil
	}
	orders, err := h.orderRepo.ListAll(ctx)
	if err != nil {
		log.Printf("AdminHandler.GetDashboardData: orders: %v", err)
		orders = nil
	}

	productRows := make([]adminProduct, 0, len(products))
	for _, p := range products {
		row := adminProduct{Product: p, PriceFormatted: format.FormatLira(p.Price)}
		if len(p.Images) > 0 {
			row.FirstImage = p.Images[0].ImageURL
		}
		if row.Sizes == nil {
			row.Sizes = []models.ProductSize{}
		}
		productRows = append(productRows, row)
	}

	orderRows := make([]adminOrder, 0, len(orders))
	for _, o := range orders {
		if o.Items == nil {
			o.Items = []models.OrderItem{}
		}
		orderRows = append(orderRows, adminOrder{Order: o, TotalFormatted: format.FormatLira(o.TotalAmount)})
	}

	stats := dashboardStats{Products: int64(len(products)), Orders: int64(len(orders))}
	if n, err := h.userRepo.Count(ctx); err == nil {
		stats.Users = n
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"products": productRows,
		"orders":   orderRows,
		"statuses": models.OrderStatuses,
		"stats":    stats,
	})
}
