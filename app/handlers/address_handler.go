package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

// AccountHandler manages saved addresses and masked payment methods.
type AccountHandler struct {
	render      *render.Render
	addressRepo repositories.AddressRepository
	paymentRepo repositories.PaymentMethodRepository
	validator   *validator.Validate
}

func NewAccountHandler(r *render.Render, addressRepo repositories.AddressRepository, paymentRepo repositories.PaymentMethodRepository, validator *validator.Validate) *AccountHandler {
	return &AccountHandler{
		render:      r,
		addressRepo: addressRepo,
		paymentRepo: paymentRepo,
		validator:   validator,
	}
}

type AddressForm struct {
	Title       string `json:"title" validate:"required,max=100"`
	FullAddress string `json:"full_address" validate:"required"`
	City        string `json:"city" validate:"required,max=100"`
	District    string `json:"district" validate:"max=100"`
	Phone       string `json:"phone" validate:"max=20"`
}

type PaymentMethodForm struct {
	CardTitle      string `json:"card_title" validate:"max=100"`
	CardNumber     string `json:"card_number" validate:"required,min=4"`
	ExpiryDate     string `json:"expiry_date" validate:"max=10"`
	CardHolderName string `json:"card_holder_name" validate:"max=100"`
}

func (h *AccountHandler) validationError(w http.ResponseWriter, err error) {
	errs := map[string]string{}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errs = helpers.FormatValidationErrors(validationErrors)
	}
	_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "Eksik veya hatalı bilgi.",
		"errors": errs,
	})
}

func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	addresses, err := h.addressRepo.ListByUser(r.Context(), user.ID)
	if err != nil {
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	_ = h.render.JSON(w, http.StatusOK, addresses)
}

func (h *AccountHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	var form AddressForm
	if err := helpers.Bind(r, &form); err != nil {
		h.validationError(w, err)
		return
	}
	if err := h.validator.Struct(&form); err != nil {
		h.validationError(w, err)
		return
	}

	address := &models.Address{
		UserID:      user.ID,
		Title:       strings.TrimSpace(form.Title),
		FullAddress: strings.TrimSpace(form.FullAddress),
		City:        strings.TrimSpace(form.City),
		District:    strings.TrimSpace(form.District),
		Phone:       strings.TrimSpace(form.Phone),
	}
	if err := h.addressRepo.Create(r.Context(), address); err != nil {
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": address.ID})
}

func (h *AccountHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.addressRepo.DeleteForUser(r.Context(), id, user.ID); err != nil {
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AccountHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	methods, err := h.paymentRepo.ListByUser(r.Context(), user.ID)
	if err != nil {
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if methods == nil {
		methods = []models.PaymentMethod{}
	}
	_ = h.render.JSON(w, http.StatusOK, methods)
}

// CreatePaymentMethod never stores more than the last four digits.
func (h *AccountHandler) CreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)

	var form PaymentMethodForm
	if err := helpers.Bind(r, &form); err != nil {
		h.validationError(w, err)
		return
	}
	if err := h.validator.Struct(&form); err != nil {
		h.validationError(w, err)
		return
	}

	method := &models.PaymentMethod{
		UserID:           user.ID,
		CardTitle:        strings.TrimSpace(form.CardTitle),
		CardNumberMasked: form.CardNumber,
		ExpiryDate:       strings.TrimSpace(form.ExpiryDate),
		CardHolderName:   strings.TrimSpace(form.CardHolderName),
	}
	if err := h.paymentRepo.Create(r.Context(), method); err != nil {
		log.Printf("AccountHandler.CreatePaymentMethod: user %d: %v", user.ID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": method.ID})
}

func (h *AccountHandler) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	id, err := helpers.ParseID(mux.Vars(r)["id"])
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.paymentRepo.DeleteForUser(r.Context(), id, user.ID); err != nil {
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
