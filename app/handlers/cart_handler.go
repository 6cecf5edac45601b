package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/Rakhulsr/cristobal/app/services"
	"github.com/Rakhulsr/cristobal/app/utils/format"
	"github.com/Rakhulsr/cristobal/app/utils/sessions"
	"github.com/unrolled/render"
)

// CheckoutObserver is told the outcome of every place-order attempt.
type CheckoutObserver interface {
	ObserveCheckout(outcome string)
}

type CartHandler struct {
	render       *render.Render
	sessionStore sessions.SessionStore
	cartSvc      *services.CartService
	checkoutSvc  *services.CheckoutService
	productRepo  repositories.ProductRepositoryImpl
	addressRepo  repositories.AddressRepository
	paymentRepo  repositories.PaymentMethodRepository
	observer     CheckoutObserver
}

func NewCartHandler(
	r *render.Render,
	sessionStore sessions.SessionStore,
	cartSvc *services.CartService,
	checkoutSvc *services.CheckoutService,
	productRepo repositories.ProductRepositoryImpl,
	addressRepo repositories.AddressRepository,
	paymentRepo repositories.PaymentMethodRepository,
	observer CheckoutObserver,
) *CartHandler {
	return &CartHandler{
		render:       r,
		sessionStore: sessionStore,
		cartSvc:      cartSvc,
		checkoutSvc:  checkoutSvc,
		productRepo:  productRepo,
		addressRepo:  addressRepo,
		paymentRepo:  paymentRepo,
		observer:     observer,
	}
}

type CartItemForm struct {
	ProductID helpers.FlexString `json:"productId"`
	Quantity  helpers.FlexString `json:"quantity"`
	Size      string             `json:"size"`
}

type PlaceOrderForm struct {
	AddressID helpers.FlexString `json:"addressId"`
	PaymentID helpers.FlexString `json:"paymentId"`
}

type cartDataResponse struct {
	*services.CartView
	SubtotalFormatted string                 `json:"subtotal_formatted"`
	ShippingFormatted string                 `json:"shipping_formatted"`
	TotalFormatted    string                 `json:"total_formatted"`
	Addresses         []models.Address       `json:"addresses"`
	PaymentMethods    []models.PaymentMethod `json:"paymentMethods"`
}

// GetCartData prices the session cart. Logged-in users also get their saved
// addresses and payment methods for the checkout page; anonymous visitors
// get null for both.
func (h *CartHandler) GetCartData(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartSvc.View(r.Context(), h.sessionStore.GetCart(r))
	if err != nil {
		log.Printf("CartHandler.GetCartData: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Sepet yüklenemedi."})
		return
	}

	resp := cartDataResponse{
		CartView:          view,
		SubtotalFormatted: format.FormatLira(view.Subtotal),
		ShippingFormatted: format.FormatLira(view.Shipping),
		TotalFormatted:    format.FormatLira(view.Total),
	}

	if user := helpers.CurrentUser(r); user != nil {
		resp.Addresses = []models.Address{}
		resp.PaymentMethods = []models.PaymentMethod{}
		if addresses, err := h.addressRepo.ListByUser(r.Context(), user.ID); err != nil {
			log.Printf("CartHandler.GetCartData: addresses for user %d: %v", user.ID, err)
		} else if addresses != nil {
			resp.Addresses = addresses
		}
		if methods, err := h.paymentRepo.ListByUser(r.Context(), user.ID); err != nil {
			log.Printf("CartHandler.GetCartData: payment methods for user %d: %v", user.ID, err)
		} else if methods != nil {
			resp.PaymentMethods = methods
		}
	}

	_ = h.render.JSON(w, http.StatusOK, resp)
}

func (h *CartHandler) AddItemCart(w http.ResponseWriter, r *http.Request) {
	if helpers.CurrentUser(r) == nil {
		_ = h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Giriş yapmalısınız."})
		return
	}

	var form CartItemForm
	if err := helpers.Bind(r, &form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Geçersiz istek."})
		return
	}
	productID, err := helpers.ParseID(form.ProductID.String())
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Geçersiz ürün."})
		return
	}
	qty := 1
	if form.Quantity.String() != "" {
		qty, err = form.Quantity.Int()
		if err != nil || qty > services.MaxLineQuantity {
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Geçersiz adet."})
			return
		}
	}

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil {
		log.Printf("CartHandler.AddItemCart: product %d: %v", productID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Sistem hatası."})
		return
	}
	if product == nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Ürün bulunamadı."})
		return
	}

	cart, err := h.cartSvc.Add(h.sessionStore.GetCart(r), productID, qty, form.Size)
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Sepetteki adet sınırı aşıldı."})
		return
	}
	if err := h.sessionStore.SetCart(w, r, cart); err != nil {
		log.Printf("CartHandler.AddItemCart: failed to save cart: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Sepet kaydedilemedi."})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Sepete eklendi.",
		"cartCount": h.cartSvc.Count(cart),
	})
}

func (h *CartHandler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	var form CartItemForm
	if err := helpers.Bind(r, &form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Geçersiz istek."})
		return
	}
	productID, _ := form.ProductID.Uint()

	cart := h.cartSvc.Remove(h.sessionStore.GetCart(r), productID, form.Size)
	if err := h.sessionStore.SetCart(w, r, cart); err != nil {
		log.Printf("CartHandler.DeleteCartItem: failed to save cart: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Sepet kaydedilemedi."})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "cartCount": h.cartSvc.Count(cart)})
}

// PlaceOrder empties the session cart up front and puts the snapshot back
// if anything after that fails.
func (h *CartHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	if user == nil {
		_ = h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Giriş yapmalısınız."})
		return
	}

	var form PlaceOrderForm
	if err := helpers.Bind(r, &form); err != nil {
		log.Printf("CartHandler.PlaceOrder: Error parsing body: %v", err)
	}
	addressID, _ := form.AddressID.Uint()
	paymentID, _ := form.PaymentID.Uint()
	if addressID == 0 || paymentID == 0 {
		h.observe("missing_data")
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Adres ve ödeme yöntemi zorunludur."})
		return
	}

	snapshot := h.sessionStore.GetCart(r)
	if len(snapshot) == 0 {
		h.observe("empty_cart")
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Sepet boş."})
		return
	}

	if err := h.sessionStore.SetCart(w, r, nil); err != nil {
		log.Printf("CartHandler.PlaceOrder: failed to clear cart: %v", err)
	}
	restore := func() {
		if err := h.sessionStore.SetCart(w, r, snapshot); err != nil {
			log.Printf("CartHandler.PlaceOrder: failed to restore cart for user %d: %v", user.ID, err)
		}
	}

	order, err := h.checkoutSvc.PlaceOrder(r.Context(), user.ID, addressID, paymentID, snapshot)
	if err != nil {
		restore()
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			h.observe("product_not_found")
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Ürün bulunamadı: " + err.Error()})
		case errors.Is(err, services.ErrAddressNotFound), errors.Is(err, services.ErrPaymentNotFound),
			errors.Is(err, services.ErrMissingCheckoutData), errors.Is(err, services.ErrEmptyCart):
			h.observe("invalid")
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Adres veya ödeme yöntemi geçersiz."})
		default:
			log.Printf("CartHandler.PlaceOrder: user %d: %v", user.ID, err)
			h.observe("error")
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Sipariş oluşturulurken bir hata oluştu."})
		}
		return
	}

	h.observe("success")
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "orderId": order.ID})
}

func (h *CartHandler) observe(outcome string) {
	if h.observer != nil {
		h.observer.ObserveCheckout(outcome)
	}
}
