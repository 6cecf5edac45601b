package admin

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type OrderStatusForm struct {
	Status string `json:"status" validate:"required"`
}

func (h *AdminHandler) UpdateOrderStatusPost(w http.ResponseWriter, r *http.Request) {
	orderID, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Geçersiz sipariş."})
		return
	}

	var form OrderStatusForm
	if err := helpers.Bind(r, &form); err != nil {
		log.Printf("AdminHandler.UpdateOrderStatusPost: Error parsing body: %v", err)
	}
	form.Status = strings.TrimSpace(form.Status)
	if err := h.validator.Struct(&form); err != nil || !models.IsValidOrderStatus(form.Status) {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    "Geçersiz durum.",
			"statuses": models.OrderStatuses,
		})
		return
	}

	if err := h.orderRepo.UpdateStatus(r.Context(), orderID, form.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "Sipariş bulunamadı."})
			return
		}
		log.Printf("AdminHandler.UpdateOrderStatusPost: order %d: %v", orderID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Hata."})
		return
	}

	log.Printf("AdminHandler.UpdateOrderStatusPost: order %d -> %s", orderID, form.Status)
	_ = h.render.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
