package routes

import (
	"net/http"

	"github.com/Rakhulsr/cristobal/app/handlers"
	"github.com/Rakhulsr/cristobal/app/handlers/admin"
	"github.com/Rakhulsr/cristobal/app/middlewares"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/Rakhulsr/cristobal/app/services"
	"github.com/Rakhulsr/cristobal/app/utils/sessions"
	"github.com/Rakhulsr/cristobal/app/utils/storage"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type Options struct {
	Render       *render.Render
	SessionStore sessions.SessionStore
	Disk         storage.Disk
	Metrics      *middlewares.Metrics

	ShippingFee decimal.Decimal
	DefaultLang string
	PublicDir   string
	LocalesDir  string

	// CSRFKey enables gorilla/csrf when set.
	CSRFKey      []byte
	CookieSecure bool
}

func NewRouter(db *gorm.DB, opts Options) *mux.Router {
	// prices leave the API as JSON numbers, the way the storefront scripts expect
	decimal.MarshalJSONWithoutQuotes = true

	if opts.Metrics == nil {
		opts.Metrics = middlewares.NewMetrics()
	}
	rnd := opts.Render
	store := opts.SessionStore
	validate := validator.New()

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	addressRepo := repositories.NewGormAddressRepository(db)
	paymentRepo := repositories.NewGormPaymentMethodRepository(db)

	cartSvc := services.NewCartService(productRepo, opts.ShippingFee)
	checkoutSvc := services.NewCheckoutService(db, opts.ShippingFee)
	catalogSvc := services.NewCatalogService(productRepo, opts.Disk)

	pageHandler := handlers.NewPageHandler(rnd, store)
	productHandler := handlers.NewProductHandler(rnd, productRepo)
	apiHandler := handlers.NewAPIHandler(rnd, opts.LocalesDir)
	authHandler := handlers.NewAuthHandler(rnd, userRepo, store, validate)
	userHandler := handlers.NewUserHandler(rnd, userRepo, orderRepo)
	accountHandler := handlers.NewAccountHandler(rnd, addressRepo, paymentRepo, validate)
	cartHandler := handlers.NewCartHandler(rnd, store, cartSvc, checkoutSvc, productRepo, addressRepo, paymentRepo, opts.Metrics)
	adminHandler := admin.NewAdminHandler(rnd, validate, productRepo, orderRepo, userRepo, catalogSvc)

	requireAPI := middlewares.RequireAuthAPI(rnd)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger)
	router.Use(opts.Metrics.Middleware)
	router.Use(middlewares.LanguageMiddleware(store, opts.DefaultLang))
	router.Use(middlewares.SessionUserMiddleware(store))
	if len(opts.CSRFKey) > 0 {
		router.Use(middlewares.CSRFMiddleware(opts.CSRFKey, opts.CookieSecure))
	}

	router.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)

	// pages
	router.HandleFunc("/", pageHandler.Page("index", "Cristobal")).Methods(http.MethodGet)
	router.HandleFunc("/about", pageHandler.Page("about", "Hakkımızda")).Methods(http.MethodGet)
	router.HandleFunc("/contact", pageHandler.Page("contact", "İletişim")).Methods(http.MethodGet)
	router.HandleFunc("/products", pageHandler.Page("products", "Ürünler")).Methods(http.MethodGet)
	router.HandleFunc("/products/{id:[0-9]+}", pageHandler.Page("product-detail", "Ürün")).Methods(http.MethodGet)
	router.HandleFunc("/set-lang/{lang}", pageHandler.SetLang).Methods(http.MethodGet)

	// auth
	router.HandleFunc("/auth/login", pageHandler.Page("login", "Giriş")).Methods(http.MethodGet)
	router.HandleFunc("/auth/register", pageHandler.Page("register", "Kayıt Ol")).Methods(http.MethodGet)
	router.HandleFunc("/auth/login", authHandler.LoginPostHandler).Methods(http.MethodPost)
	router.HandleFunc("/auth/register", authHandler.RegisterPostHandler).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout", authHandler.LogoutHandler).Methods(http.MethodGet)

	// cart
	router.HandleFunc("/cart", pageHandler.Page("cart", "Sepet")).Methods(http.MethodGet)
	router.Handle("/cart/checkout", middlewares.RequireAuthPage(pageHandler.Page("checkout", "Ödeme"))).Methods(http.MethodGet)
	router.HandleFunc("/cart/success", pageHandler.Page("success", "Sipariş Alındı")).Methods(http.MethodGet)
	router.HandleFunc("/cart/data", cartHandler.GetCartData).Methods(http.MethodGet)
	router.HandleFunc("/cart/add", cartHandler.AddItemCart).Methods(http.MethodPost)
	router.HandleFunc("/cart/remove", cartHandler.DeleteCartItem).Methods(http.MethodPost)
	router.HandleFunc("/cart/place-order", cartHandler.PlaceOrder).Methods(http.MethodPost)

	// user pages
	router.Handle("/user/profile/update", requireAPI(http.HandlerFunc(userHandler.UpdateProfile))).Methods(http.MethodPost)
	userPages := router.PathPrefix("/user").Subrouter()
	userPages.Use(middlewares.RequireAuthPage)
	userPages.HandleFunc("/profile", pageHandler.Page("user/profile", "Profilim")).Methods(http.MethodGet)
	userPages.HandleFunc("/orders", pageHandler.Page("user/orders", "Siparişlerim")).Methods(http.MethodGet)
	userPages.HandleFunc("/addresses", pageHandler.Page("user/addresses", "Adreslerim")).Methods(http.MethodGet)
	userPages.HandleFunc("/payment-methods", pageHandler.Page("user/payment-methods", "Ödeme Yöntemlerim")).Methods(http.MethodGet)

	// public API
	router.HandleFunc("/api/products", productHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/api/products/latest", productHandler.Latest).Methods(http.MethodGet)
	router.HandleFunc("/api/products/{id}", productHandler.Detail).Methods(http.MethodGet)
	router.HandleFunc("/api/translations", apiHandler.Translations).Methods(http.MethodGet)
	router.HandleFunc("/api/user/me", apiHandler.Me).Methods(http.MethodGet)

	// user API
	userAPI := router.PathPrefix("/api/user").Subrouter()
	userAPI.Use(requireAPI)
	userAPI.HandleFunc("/orders", userHandler.Orders).Methods(http.MethodGet)
	userAPI.HandleFunc("/orders/{id}", userHandler.OrderDetail).Methods(http.MethodGet)
	userAPI.HandleFunc("/addresses", accountHandler.ListAddresses).Methods(http.MethodGet)
	userAPI.HandleFunc("/addresses", accountHandler.CreateAddress).Methods(http.MethodPost)
	userAPI.HandleFunc("/addresses/{id}", accountHandler.DeleteAddress).Methods(http.MethodDelete)
	userAPI.HandleFunc("/payment-methods", accountHandler.ListPaymentMethods).Methods(http.MethodGet)
	userAPI.HandleFunc("/payment-methods", accountHandler.CreatePaymentMethod).Methods(http.MethodPost)
	userAPI.HandleFunc("/payment-methods/{id}", accountHandler.DeletePaymentMethod).Methods(http.MethodDelete)

	// admin
	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminOnly)
	adminRouter.HandleFunc("", pageHandler.Page("admin/dashboard", "Yönetim Paneli")).Methods(http.MethodGet)
	adminRouter.HandleFunc("/data", adminHandler.GetDashboardData).Methods(http.MethodGet)
	adminRouter.HandleFunc("/product/add", adminHandler.AddProductPost).Methods(http.MethodPost)
	adminRouter.HandleFunc("/product/update/{id}", adminHandler.EditProductPost).Methods(http.MethodPost)
	adminRouter.HandleFunc("/product/delete/{id}", adminHandler.DeleteProductPost).Methods(http.MethodPost)
	adminRouter.HandleFunc("/order/update/{id}", adminHandler.UpdateOrderStatusPost).Methods(http.MethodPost)

	if opts.PublicDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(publicFS{http.Dir(opts.PublicDir)})).Methods(http.MethodGet, http.MethodHead)
	}

	return router
}
