package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

// UserHandler serves the logged-in user's profile and order history.
type UserHandler struct {
	render    *render.Render
	userRepo  repositories.UserRepositoryImpl
	orderRepo repositories.OrderRepository
}

func NewUserHandler(r *render.Render, userRepo repositories.UserRepositoryImpl, orderRepo repositories.OrderRepository) *UserHandler {
	return &UserHandler{
		render:    r,
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

type ProfileForm struct {
	Password string `json:"password"`
}

// UpdateProfile changes the password; an empty one is reported, not an error.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	var form ProfileForm
	if err := helpers.Bind(r, &form); err != nil {
		log.Printf("UserHandler.UpdateProfile: Error parsing body: %v", err)
	}
	if strings.TrimSpace(form.Password) == "" {
		_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "Şifre boş olamaz."})
		return
	}
	if len(form.Password) > helpers.MaxPasswordBytes {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Şifre çok uzun."})
		return
	}

	if err := h.userRepo.UpdatePassword(r.Context(), user.ID, form.Password); err != nil {
		log.Printf("UserHandler.UpdateProfile: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Hata oluştu."})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Şifre güncellendi."})
}

func (h *UserHandler) Orders(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	orders, err := h.orderRepo.FindByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("UserHandler.Orders: user %d: %v", user.ID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

// OrderDetail answers 404 for missing orders and for orders of other users.
func (h *UserHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	orderID, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "Sipariş bulunamadı."})
		return
	}

	order, err := h.orderRepo.FindByIDForUser(r.Context(), orderID, user.ID)
	if err != nil {
		log.Printf("UserHandler.OrderDetail: order %d: %v", orderID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if order == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "Sipariş bulunamadı."})
		return
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}
