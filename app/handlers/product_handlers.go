package handlers

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/Rakhulsr/cristobal/app/utils/format"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

const latestProductsLimit = 3

type ProductHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
}

func NewProductHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl) *ProductHandler {
	return &ProductHandler{
		render:      r,
		productRepo: productRepo,
	}
}

type productResponse struct {
	*models.Product
	PriceFormatted string   `json:"price_formatted"`
	Images         []string `json:"images,omitempty"`
}

func toProductResponses(products []models.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i := range products {
		out[i] = productResponse{Product: &products[i], PriceFormatted: format.FormatLira(products[i].Price)}
	}
	return out
}

// List handles GET /api/products?category=&q=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	products, err := h.productRepo.List(r.Context(), repositories.ProductFilter{
		Category: query.Get("category"),
		Query:    query.Get("q"),
	})
	if err != nil {
		log.Printf("ProductHandler.List: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, toProductResponses(products))
}

func (h *ProductHandler) Latest(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.Latest(r.Context(), latestProductsLimit)
	if err != nil {
		log.Printf("ProductHandler.Latest: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, toProductResponses(products))
}

// Detail returns the product with images (cover first) and sizes.
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
		return
	}

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ProductHandler.Detail: product %d: %v", id, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if product == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
		return
	}
	if product.Sizes == nil {
		product.Sizes = []models.ProductSize{}
	}

	_ = h.render.JSON(w, http.StatusOK, productResponse{
		Product:        product,
		PriceFormatted: format.FormatLira(product.Price),
		Images:         product.ImageURLs(),
	})
}
