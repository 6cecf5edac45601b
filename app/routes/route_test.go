package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Rakhulsr/cristobal/app/db/dbtest"
	"github.com/Rakhulsr/cristobal/app/middlewares"
	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/Rakhulsr/cristobal/app/repositories"
	"github.com/Rakhulsr/cristobal/app/utils/renderer"
	"github.com/Rakhulsr/cristobal/app/utils/sessions"
	"github.com/Rakhulsr/cristobal/app/utils/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	server *httptest.Server
	client *http.Client
}

func newTestApp(t *testing.T, configure ...func(*Options)) *testApp {
	t.Helper()
	db := dbtest.Open(t)

	opts := Options{
		Render:       renderer.New("../../views", true),
		SessionStore: sessions.NewCookieSessionStore(false, []byte("route-test-secret")),
		Disk:         storage.NewLocalDisk(t.TempDir(), "/images"),
		Metrics:      middlewares.NewMetrics(),
		ShippingFee:  decimal.NewFromInt(300),
		DefaultLang:  "tr",
		LocalesDir:   "../../locales",
	}
	for _, fn := range configure {
		fn(&opts)
	}

	server := httptest.NewServer(NewRouter(db, opts))
	t.Cleanup(server.Close)

	return &testApp{t: t, db: db, server: server, client: newClient(t)}
}

func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *testApp) do(client *http.Client, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(a.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func (a *testApp) post(path string, body interface{}) (*http.Response, map[string]interface{}) {
	return a.do(a.client, http.MethodPost, path, body)
}

func (a *testApp) get(path string) (*http.Response, map[string]interface{}) {
	return a.do(a.client, http.MethodGet, path, nil)
}

func (a *testApp) getList(path string) (*http.Response, []interface{}) {
	a.t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	var out []interface{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func (a *testApp) createUser(username, email, password, role string) *models.User {
	a.t.Helper()
	user := &models.User{Username: username, Email: email, Password: password, Role: role}
	require.NoError(a.t, repositories.NewUserRepository(a.db).Create(context.Background(), user))
	return user
}

func (a *testApp) login(email, password string) {
	a.t.Helper()
	resp, _ := a.post("/auth/login", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, resp.StatusCode)
}

func (a *testApp) createProduct(nameTR string, price int64) *models.Product {
	a.t.Helper()
	product := &models.Product{
		NameTR:        nameTR,
		NameEN:        nameTR + " EN",
		Price:         decimal.NewFromInt(price),
		Category:      "Kaban",
		CoverImageURL: "/images/cover.jpg",
		Images:        []models.ProductImage{{ImageURL: "/images/g1.jpg"}},
		Sizes:         []models.ProductSize{{Size: "48", Stock: 2}, {Size: "50", Stock: 3}},
	}
	require.NoError(a.t, repositories.NewProductRepository(a.db).Create(context.Background(), product))
	return product
}

type checkoutFixture struct {
	user    *models.User
	product *models.Product
	address *models.Address
	payment *models.PaymentMethod
}

func (a *testApp) checkoutFixture() checkoutFixture {
	a.t.Helper()
	ctx := context.Background()
	user := a.createUser("ayse", "ayse@example.com", "secret", models.RoleUser)
	product := a.createProduct("Kaban", 1000)

	address := &models.Address{UserID: user.ID, Title: "Ev", FullAddress: "Moda Cd. 1", City: "İstanbul"}
	require.NoError(a.t, repositories.NewGormAddressRepository(a.db).Create(ctx, address))
	payment := &models.PaymentMethod{UserID: user.ID, CardTitle: "Kart", CardHolderName: "Ayşe", CardNumberMasked: "4111111111111111"}
	require.NoError(a.t, repositories.NewGormPaymentMethodRepository(a.db).Create(ctx, payment))

	a.login(user.Email, "secret")
	return checkoutFixture{user: user, product: product, address: address, payment: payment}
}

func (a *testApp) cartCount() float64 {
	a.t.Helper()
	_, me := a.get("/api/user/me")
	return me["cartCount"].(float64)
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.post("/auth/register", map[string]string{"username": "mehmet", "email": "Mehmet@Example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/auth/login", body["redirectUrl"])

	resp, body = app.post("/auth/register", map[string]string{"username": "m2", "email": "mehmet@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	resp, _ = app.post("/auth/register", map[string]string{"username": "", "email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = app.post("/auth/login", map[string]string{"email": "mehmet@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = app.post("/auth/login", map[string]string{"email": "mehmet@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/", body["redirectUrl"])

	_, me := app.get("/api/user/me")
	user, ok := me["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "mehmet", user["username"])

	resp, _ = app.get("/auth/logout")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	_, me = app.get("/api/user/me")
	assert.Nil(t, me["user"])
}

func TestAuth_AdminLoginRedirectsToDashboard(t *testing.T) {
	app := newTestApp(t)
	app.createUser("Admin", "admin@cristobal.com", "admin123", models.RoleAdmin)

	resp, body := app.post("/auth/login", map[string]string{"email": "admin@cristobal.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/admin", body["redirectUrl"])
}

func TestProducts_ListAndDetail(t *testing.T) {
	app := newTestApp(t)
	p := app.createProduct("Siyah Kaban", 8500)
	app.createProduct("Lacivert Kaban", 7900)

	resp, list := app.getList("/api/products?q=Siyah")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)

	resp, detail := app.get("/api/products/" + itoa(p.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Siyah Kaban", detail["name_tr"])
	assert.Equal(t, 8500.0, detail["price"])
	images := detail["images"].([]interface{})
	require.Len(t, images, 2)
	assert.Equal(t, "/images/cover.jpg", images[0])
	assert.Len(t, detail["sizes"], 2)

	resp, _ = app.get("/api/products/9999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPages_RenderShells(t *testing.T) {
	app := newTestApp(t)
	p := app.createProduct("Kaban", 1000)

	for _, path := range []string{"/", "/about", "/contact", "/products", "/products/" + itoa(p.ID), "/auth/login", "/auth/register", "/cart"} {
		resp, err := app.client.Get(app.server.URL + path)
		require.NoError(t, err, path)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, string(body), "CRISTOBAL", path)
	}
}

func TestPages_SetLang(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.get("/set-lang/en")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	_, me := app.get("/api/user/me")
	assert.Equal(t, "en", me["lang"])

	app.get("/set-lang/de")
	_, me = app.get("/api/user/me")
	assert.Equal(t, "en", me["lang"])

	_, tr := app.get("/api/translations")
	nav := tr["nav"].(map[string]interface{})
	assert.Equal(t, "Products", nav["products"])
}

func TestGuards(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.get("/user/profile")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))

	resp, _ = app.get("/api/user/orders")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = app.post("/user/profile/update", map[string]string{"password": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	app.createUser("ali", "ali@example.com", "pw", models.RoleUser)
	app.login("ali@example.com", "pw")

	resp, _ = app.get("/admin")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	resp, _ = app.get("/admin/data")
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp, _ = app.get("/user/profile")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCart_AddRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	p := app.createProduct("Kaban", 1000)

	resp, _ := app.post("/cart/add", map[string]interface{}{"productId": p.ID, "quantity": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := app.get("/cart/data")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["addresses"])
	assert.Nil(t, body["paymentMethods"])
	assert.Equal(t, 0.0, body["total"])
}

func TestCart_AddRejectsOversizedQuantity(t *testing.T) {
	app := newTestApp(t)
	fx := app.checkoutFixture()

	huge := "9223372036854775807"
	for i := 0; i < 2; i++ {
		resp, _ := app.post("/cart/add", map[string]interface{}{"productId": fx.product.ID, "quantity": huge, "size": "48"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
	resp, _ := app.post("/cart/add", map[string]interface{}{"productId": fx.product.ID, "quantity": "iki", "size": "48"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0.0, app.cartCount())

	resp, _ = app.post("/cart/add", map[string]interface{}{"productId": fx.product.ID, "quantity": 60, "size": "48"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = app.post("/cart/add", map[string]interface{}{"productId": fx.product.ID, "quantity": 60, "size": "48"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 60.0, app.cartCount())

	resp, body := app.post("/cart/add", map[string]interface{}{"productId": fx.product.ID, "size": "48"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 61.0, body["cartCount"])
}

func TestCheckout_PlaceOrder(t *testing.T) {
	app := newTestApp(t)
	fx := app.checkoutFixture()

	resp, body := app.post("/cart/add", map[string]interface{}{"productId": itoa(fx.product.ID), "quantity": "2", "size": "48"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2.0, body["cartCount"])

	_, cart := app.get("/cart/data")
	assert.Equal(t, 2300.0, cart["total"])
	assert.Len(t, cart["addresses"], 1)
	assert.Len(t, cart["paymentMethods"], 1)

	resp, body = app.post("/cart/place-order", map[string]interface{}{"addressId": fx.address.ID, "paymentId": fx.payment.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	orderID := uint(body["orderId"].(float64))
	assert.NotZero(t, orderID)
	assert.Equal(t, 0.0, app.cartCount())

	_, detail := app.get("/api/user/orders/" + itoa(orderID))
	assert.Equal(t, 2300.0, detail["total_amount"])
	assert.Equal(t, models.OrderStatusPreparing, detail["status"])
	assert.Len(t, detail["items"], 1)

	resp, orders := app.getList("/api/user/orders")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, orders, 1)
}

func TestCheckout_Validation(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.post("/cart/place-order", map[string]interface{}{"addressId": 1, "paymentId": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	fx := app.checkoutFixture()

	resp, _ = app.post("/cart/place-order", map[string]interface{}{"addressId": fx.address.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := app.post("/cart/place-order", map[string]interface{}{"addressId": fx.address.ID, "paymentId": fx.payment.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Sepet boş.", body["error"])
}

func TestCheckout_UnknownProductRestoresCart(t *testing.T) {
	app := newTestApp(t)
	fx := app.checkoutFixture()

	resp, _ := app.post("/cart/add", map[string]interface{}{"productId": fx.product.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, repositories.NewProductRepository(app.db).Delete(context.Background(), fx.product.ID))

	resp, _ = app.post("/cart/place-order", map[string]interface{}{"addressId": fx.address.ID, "paymentId": fx.payment.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1.0, app.cartCount())
}

func TestCheckout_PersistenceFailureRestoresCart(t *testing.T) {
	app := newTestApp(t)
	fx := app.checkoutFixture()

	resp, _ := app.post("/cart/add", map[string]interface{}{"productId": fx.product.ID, "quantity": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, app.db.Callback().Create().Before("gorm:create").Register("test:fail_order_items", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_items" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	resp, _ = app.post("/cart/place-order", map[string]interface{}{"addressId": fx.address.ID, "paymentId": fx.payment.ID})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 3.0, app.cartCount())

	var orders int64
	require.NoError(t, app.db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestCheckout_ForeignAddressRejected(t *testing.T) {
	app := newTestApp(t)
	fx := app.checkoutFixture()

	other := app.createUser("veli", "veli@example.com", "pw", models.RoleUser)
	foreign := &models.Address{UserID: other.ID, Title: "İş", FullAddress: "x", City: "Ankara"}
	require.NoError(t, repositories.NewGormAddressRepository(app.db).Create(context.Background(), foreign))

	app.post("/cart/add", map[string]interface{}{"productId": fx.product.ID, "quantity": 1})
	resp, _ := app.post("/cart/place-order", map[string]interface{}{"addressId": foreign.ID, "paymentId": fx.payment.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1.0, app.cartCount())
}

func TestAccount_AddressesAndPaymentMethods(t *testing.T) {
	app := newTestApp(t)
	app.createUser("zeynep", "zeynep@example.com", "pw", models.RoleUser)
	app.login("zeynep@example.com", "pw")

	resp, _ := app.post("/api/user/addresses", map[string]string{"title": "Ev", "full_address": "Bağdat Cd.", "city": "İstanbul"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, addresses := app.getList("/api/user/addresses")
	require.Len(t, addresses, 1)

	id := uint(addresses[0].(map[string]interface{})["id"].(float64))
	resp, _ = app.do(app.client, http.MethodDelete, "/api/user/addresses/"+itoa(id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, addresses = app.getList("/api/user/addresses")
	assert.Empty(t, addresses)

	resp, _ = app.post("/api/user/payment-methods", map[string]string{"card_title": "Bonus", "card_number": "4111 1111 1111 1234", "expiry_date": "12/29"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, methods := app.getList("/api/user/payment-methods")
	require.Len(t, methods, 1)
	assert.Equal(t, "**** **** **** 1234", methods[0].(map[string]interface{})["card_number_masked"])
}

func TestProfile_UpdatePassword(t *testing.T) {
	app := newTestApp(t)
	app.createUser("deniz", "deniz@example.com", "old", models.RoleUser)
	app.login("deniz@example.com", "old")

	_, body := app.post("/user/profile/update", map[string]string{"password": ""})
	assert.Equal(t, false, body["success"])

	resp, body := app.post("/user/profile/update", map[string]string{"password": "new"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	fresh := &testApp{t: t, db: app.db, server: app.server, client: newClient(t)}
	resp, _ = fresh.post("/auth/login", map[string]string{"email": "deniz@example.com", "password": "new"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPasswords_RejectOverBcryptLimit(t *testing.T) {
	app := newTestApp(t)
	long := strings.Repeat("ğ", 40)

	resp, body := app.post("/auth/register", map[string]string{"username": "uzun", "email": "uzun@example.com", "password": long})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
	var count int64
	require.NoError(t, app.db.Model(&models.User{}).Where("email = ?", "uzun@example.com").Count(&count).Error)
	assert.Zero(t, count)

	app.createUser("kisa", "kisa@example.com", "secret", models.RoleUser)
	app.login("kisa@example.com", "secret")
	resp, body = app.post("/user/profile/update", map[string]string{"password": strings.Repeat("a", 80)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	fresh := &testApp{t: t, db: app.db, server: app.server, client: newClient(t)}
	resp, _ = fresh.post("/auth/login", map[string]string{"email": "kisa@example.com", "password": "secret"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdmin_ManageCatalogAndOrders(t *testing.T) {
	app := newTestApp(t)
	fx := app.checkoutFixture()
	app.post("/cart/add", map[string]interface{}{"productId": fx.product.ID, "quantity": 1})
	_, placed := app.post("/cart/place-order", map[string]interface{}{"addressId": fx.address.ID, "paymentId": fx.payment.ID})
	orderID := uint(placed["orderId"].(float64))

	admin := &testApp{t: t, db: app.db, server: app.server, client: newClient(t)}
	admin.createUser("Admin", "admin@cristobal.com", "admin123", models.RoleAdmin)
	admin.login("admin@cristobal.com", "admin123")

	resp, data := admin.get("/admin/data")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, data["products"], 1)
	assert.Len(t, data["orders"], 1)

	resp, _ = admin.post("/admin/order/update/"+itoa(orderID), map[string]string{"status": "Bogus"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = admin.post("/admin/order/update/"+itoa(orderID), map[string]string{"status": models.OrderStatusShipped})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = admin.post("/admin/order/update/9999", map[string]string{"status": models.OrderStatusShipped})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{"name_tr": "Yeni Yelek", "price": "4500", "category": "Yelek", "stock": "8", "sizes": `[{"size":"M","stock":"4"}]`} {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("cover_image", "cover.jpg")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("jpeg"))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, admin.server.URL+"/admin/product/add", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	addResp, err := admin.client.Do(req)
	require.NoError(t, err)
	var added map[string]interface{}
	require.NoError(t, json.NewDecoder(addResp.Body).Decode(&added))
	addResp.Body.Close()
	require.Equal(t, http.StatusOK, addResp.StatusCode)
	newID := uint(added["id"].(float64))

	_, detail := admin.get("/api/products/" + itoa(newID))
	assert.Equal(t, "Yeni Yelek", detail["name_tr"])
	assert.True(t, strings.HasPrefix(detail["cover_image_url"].(string), "/images/"))
	assert.Len(t, detail["sizes"], 1)

	resp, _ = admin.post("/admin/product/delete/"+itoa(fx.product.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = admin.get("/api/products/" + itoa(fx.product.ID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCSRF_RejectsUnsafeRequestsWithoutToken(t *testing.T) {
	key := make([]byte, 32)
	app := newTestApp(t, func(o *Options) { o.CSRFKey = key })

	resp, _ := app.post("/auth/login", map[string]string{"email": "a@b.c", "password": "x"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	meResp, err := app.client.Get(app.server.URL + "/api/user/me")
	require.NoError(t, err)
	meResp.Body.Close()
	token := meResp.Header.Get("X-CSRF-Token")
	require.NotEmpty(t, token)

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/auth/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRF-Token", token)
	resp, err = app.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStatic_NoDirectoryListing(t *testing.T) {
	public := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(public, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "images", "kaban.jpg"), []byte("jpeg"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(public, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "docs", "index.html"), []byte("<p>docs</p>"), 0o644))
	app := newTestApp(t, func(o *Options) { o.PublicDir = public })

	resp, err := app.client.Get(app.server.URL + "/images/")
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotContains(t, string(raw), "kaban.jpg")

	resp, err = app.client.Get(app.server.URL + "/images/kaban.jpg")
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jpeg", string(raw))

	resp, err = app.client.Get(app.server.URL + "/docs/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_PricesAsJSONNumbers(t *testing.T) {
	app := newTestApp(t)
	assert.True(t, decimal.MarshalJSONWithoutQuotes)

	p := app.createProduct("Kaban", 1250)
	_, body := app.get("/api/products/" + itoa(p.ID))
	assert.Equal(t, 1250.0, body["price"])
}

func TestMetrics_Exposed(t *testing.T) {
	app := newTestApp(t)
	app.get("/api/products")

	resp, err := app.client.Get(app.server.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "storefront_http_requests_total")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
