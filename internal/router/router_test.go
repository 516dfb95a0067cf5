package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/handlers"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity/hashing"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity/token"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/router"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service/memstore"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() { gin.SetMode(gin.TestMode) }

// ---- учётные записи в памяти ----

type accounts struct {
	mu       sync.Mutex
	users    map[string]models.User
	profiles map[uuid.UUID]models.Profile
}

type userRepo struct{ a *accounts }

func (r userRepo) Create(_ context.Context, u *models.User) error {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	r.a.users[u.Email] = *u
	return nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	u, ok := r.a.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	for _, u := range r.a.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	_, ok := r.a.users[email]
	return ok, nil
}

type profileRepo struct{ a *accounts }

func (r profileRepo) Get(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	p, ok := r.a.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r profileRepo) Upsert(_ context.Context, p *models.Profile) error {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	r.a.profiles[p.ID] = *p
	return nil
}

func (r profileRepo) SetRole(_ context.Context, id uuid.UUID, role models.Role) error {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	p := r.a.profiles[id]
	p.ID, p.Role = id, role
	r.a.profiles[id] = p
	return nil
}

func (a *accounts) Users() identity.UserRepo       { return userRepo{a} }
func (a *accounts) Profiles() identity.ProfileRepo { return profileRepo{a} }
func (a *accounts) WithTx(_ context.Context, fn func(tx identity.Store) error) error {
	return fn(a)
}

// ---- окружение ----

type env struct {
	t        *testing.T
	engine   *gin.Engine
	ids      *identity.Service
	catalog  *service.CatalogService
	notifier *memstore.Recorder
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := zap.NewNop()
	store := memstore.New()
	rec := &memstore.Recorder{}

	acc := &accounts{users: map[string]models.User{}, profiles: map[uuid.UUID]models.Profile{}}
	ids := identity.NewService(acc, hashing.NewBcrypt(bcrypt.MinCost), token.NewHSProvider("test-secret", "li", "api"), nil, 0, time.Hour, log)

	catalog := service.NewCatalogService(store, log)
	svc := router.Services{
		Identity:       ids,
		Catalog:        catalog,
		Bookings:       service.NewBookingService(store, rec, log),
		Orders:         service.NewOrderService(store, rec, map[string]decimal.Decimal{"standard": decimal.NewFromInt(5)}, log),
		CustomRequests: service.NewCustomRequestService(store, rec, log),
		Contact:        service.NewContactService(store, rec, log),
		Uploads:        service.NewUploadService(store, "http://shop.test", 1024, log),
	}
	opt := router.Options{
		UploadMaxBytes: 1024,
		HealthDeps:     map[string]handlers.Pinger{"db": okPinger{}},
	}
	return &env{t: t, engine: router.Router(svc, opt, log), ids: ids, catalog: catalog, notifier: rec}
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func (e *env) signUp(email, password string, role models.Role) {
	e.t.Helper()
	_, err := e.ids.SignUp(context.Background(), identity.SignUpInput{Email: email, Password: password, Role: role})
	require.NoError(e.t, err)
}

func (e *env) do(method, path, tok string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(e.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *env) login(path, email, password string) string {
	e.t.Helper()
	w := e.do(http.MethodPost, path, "", map[string]string{"email": email, "password": password})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	var s dto.SessionResponse
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &s))
	return s.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (e *env) adminToken() string {
	e.signUp("owner@shop.test", "admin-pass", models.RoleAdmin)
	return e.login("/api/auth/login", "owner@shop.test", "admin-pass")
}

func (e *env) class(spots int) *models.ClassOffering {
	e.t.Helper()
	c, err := e.catalog.CreateClass(context.Background(), service.ClassInput{
		Title: "Wire Wrap", Price: decimal.RequireFromString("25"), Spots: spots, Date: "2030-01-01",
	})
	require.NoError(e.t, err)
	return c
}

// ---- тесты ----

func TestHealth(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[dto.HealthResponse](t, w).Status)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodGet, "/api/nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodPatch, "/api/categories", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "method_not_allowed", decode[dto.ErrorResponse](t, w).Code)
}

func TestAuthFlows(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken()

	w := e.do(http.MethodPost, "/api/auth/customer-signup", "", map[string]string{
		"email": "ann@example.com", "password": "secret1", "name": "Ann",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sess := decode[dto.SessionResponse](t, w)
	assert.Equal(t, "customer", sess.User.Role)
	assert.NotEmpty(t, sess.Token)

	w = e.do(http.MethodPost, "/api/auth/customer-signup", "", map[string]string{"email": "ann@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPost, "/api/auth/customer-login", "", map[string]string{"email": "ann@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// учётка админа не входит через вход покупателя, и наоборот
	w = e.do(http.MethodPost, "/api/auth/customer-login", "", map[string]string{"email": "owner@shop.test", "password": "admin-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = e.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "owner@shop.test"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", decode[dto.ErrorResponse](t, w).Error)

	customer := e.login("/api/auth/customer-login", "ann@example.com", "secret1")

	w = e.do(http.MethodGet, "/api/auth/customer-me", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ann@example.com", decode[dto.UserEnvelope](t, w).User.Email)

	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/api/auth/me", customer, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/auth/me", admin, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/auth/customer-me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/auth/customer-me", "not-a-jwt", nil).Code)

	w = e.do(http.MethodPost, "/api/auth/register", customer, map[string]string{"email": "x@shop.test", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = e.do(http.MethodPost, "/api/auth/register", admin, map[string]string{"email": "second@shop.test", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "admin", decode[dto.UserEnvelope](t, w).User.Role)
	e.login("/api/auth/login", "second@shop.test", "secret1")
}

func TestCatalogWritesNeedAdmin(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken()
	e.signUp("ann@example.com", "secret1", models.RoleCustomer)
	customer := e.login("/api/auth/customer-login", "ann@example.com", "secret1")

	body := map[string]any{"name": "Beads"}
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodPost, "/api/categories", "", body).Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPost, "/api/categories", customer, body).Code)

	w := e.do(http.MethodPost, "/api/categories", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(http.MethodPost, "/api/categories", admin, map[string]any{"name": "BEADS"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPost, "/api/categories", admin, map[string]any{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name is required", decode[dto.ErrorResponse](t, w).Error)

	w = e.do(http.MethodPost, "/api/contact-messages", "", map[string]string{"name": " ", "email": "bob@example.com", "message": "Hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.CategoryResponse](t, w), 1)
}

func TestProductPriceAcceptsStringAndPartialUpdate(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken()

	w := e.do(http.MethodPost, "/api/products", admin, `{"name":"Glass Beads","price":"19.99","stock":4,"category":"Beads","inStock":false}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[dto.ProductResponse](t, w)
	assert.Equal(t, 19.99, p.Price)
	assert.True(t, p.InStock, "inStock follows stock")

	w = e.do(http.MethodPut, "/api/products/"+p.ID.String(), admin, `{"price":21.5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	upd := decode[dto.ProductResponse](t, w)
	assert.Equal(t, 21.5, upd.Price)
	assert.Equal(t, "Glass Beads", upd.Name)
	assert.Equal(t, "Beads", upd.Category)
	assert.Equal(t, 4, upd.Stock)

	w = e.do(http.MethodPost, "/api/products", admin, `{"name":"x","price":"1","bogus":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/products/not-a-uuid", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/products/"+uuid.NewString(), "", nil).Code)
}

func TestBookingLifecycle(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken()
	e.signUp("ann@example.com", "secret1", models.RoleCustomer)
	customer := e.login("/api/auth/customer-login", "ann@example.com", "secret1")
	class := e.class(2)

	// гостевая бронь
	w := e.do(http.MethodPost, "/api/bookings", "", map[string]any{
		"classId":   class.ID,
		"customer":  map[string]string{"firstName": "Ann", "email": "ann@example.com"},
		"attendees": 2,
		"className": "Forged Name",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := decode[dto.BookingResponse](t, w)
	assert.Equal(t, "Wire Wrap", b.ClassName)
	assert.Equal(t, 50.0, b.TotalPrice)
	assert.Nil(t, b.CustomerID)

	w = e.do(http.MethodPost, "/api/bookings", "", map[string]any{
		"classId":  class.ID,
		"customer": map[string]string{"email": "bob@example.com"},
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, "Not enough spots available", decode[dto.ErrorResponse](t, w).Error)

	w = e.do(http.MethodPost, "/api/bookings", "", map[string]any{"customer": map[string]string{"email": "bob@example.com"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Class ID and customer are required", decode[dto.ErrorResponse](t, w).Error)

	// список
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/bookings", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/api/bookings", customer, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/bookings?email=bob@example.com", customer, nil).Code)

	w = e.do(http.MethodGet, "/api/bookings?email=ann@example.com", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.BookingResponse](t, w), 1)

	w = e.do(http.MethodGet, "/api/bookings", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.BookingResponse](t, w), 1)

	// чтение по id
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/bookings/"+b.ID.String(), "", nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/bookings/"+b.ID.String(), customer, nil).Code)

	e.signUp("eve@example.com", "secret1", models.RoleCustomer)
	eve := e.login("/api/auth/customer-login", "eve@example.com", "secret1")
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/bookings/"+b.ID.String(), eve, nil).Code)

	// изменение и удаление только админом
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPut, "/api/bookings/"+b.ID.String(), customer, map[string]string{"status": "cancelled"}).Code)

	w = e.do(http.MethodPut, "/api/bookings/"+b.ID.String(), admin, map[string]string{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPut, "/api/bookings/"+b.ID.String(), admin, map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", decode[dto.BookingResponse](t, w).Status)

	got, err := e.catalog.GetClass(context.Background(), class.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.SpotsLeft)

	w = e.do(http.MethodDelete, "/api/bookings/"+b.ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.DeletedResponse](t, w).Deleted)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/api/bookings/"+b.ID.String(), admin, nil).Code)
}

func TestBookingCustomerIDMustMatchToken(t *testing.T) {
	e := newEnv(t)
	e.signUp("ann@example.com", "secret1", models.RoleCustomer)
	customer := e.login("/api/auth/customer-login", "ann@example.com", "secret1")
	class := e.class(5)

	w := e.do(http.MethodGet, "/api/auth/customer-me", customer, nil)
	me := decode[dto.UserEnvelope](t, w).User

	w = e.do(http.MethodPost, "/api/bookings", customer, map[string]any{
		"classId":    class.ID,
		"customerId": me.ID,
		"customer":   map[string]string{"email": "ann@example.com"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := decode[dto.BookingResponse](t, w)
	require.NotNil(t, b.CustomerID)
	assert.Equal(t, me.ID, *b.CustomerID)

	w = e.do(http.MethodPost, "/api/bookings", "", map[string]any{
		"classId":    class.ID,
		"customerId": me.ID,
		"customer":   map[string]string{"email": "mallory@example.com"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, decode[dto.BookingResponse](t, w).CustomerID)

	w = e.do(http.MethodGet, "/api/bookings?customer_id="+me.ID.String(), customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.BookingResponse](t, w), 1)
}

func TestOrderCheckout(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken()

	w := e.do(http.MethodPost, "/api/products", admin, map[string]any{"name": "Charm", "price": "2.50", "stock": 3})
	require.Equal(t, http.StatusCreated, w.Code)
	p := decode[dto.ProductResponse](t, w)

	order := func(qty int, total string) *httptest.ResponseRecorder {
		return e.do(http.MethodPost, "/api/orders", "", map[string]any{
			"customer": map[string]string{"email": "ann@example.com"},
			"items":    []map[string]any{{"productId": p.ID, "quantity": qty, "price": 0.01}},
			"total":    total,
		})
	}

	w = order(2, "1.00")
	assert.Equal(t, http.StatusBadRequest, w.Code, "tampered total")

	w = order(2, "10.00")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	o := decode[dto.OrderResponse](t, w)
	assert.Equal(t, 10.0, o.Total)
	assert.Equal(t, 2.5, o.Items[0].Price)
	assert.Equal(t, "pending", o.Status)

	w = order(2, "10.00")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Insufficient stock for Charm", decode[dto.ErrorResponse](t, w).Error)

	w = e.do(http.MethodPost, "/api/orders", "", map[string]any{"customer": map[string]string{"email": "ann@example.com"}, "items": []any{}, "total": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/api/products/"+p.ID.String(), "", nil)
	assert.Equal(t, 1, decode[dto.ProductResponse](t, w).Stock)

	w = e.do(http.MethodPut, "/api/orders/"+o.ID.String(), admin, map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodGet, "/api/products/"+p.ID.String(), "", nil)
	assert.Equal(t, 3, decode[dto.ProductResponse](t, w).Stock)
}

func TestCustomRequestAndContact(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken()

	w := e.do(http.MethodPost, "/api/custom-requests", "", map[string]any{
		"customer":       map[string]string{"email": "ann@example.com"},
		"description":    "Matching earrings",
		"specifications": map[string]any{"metal": "silver"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	r := decode[dto.CustomRequestResponse](t, w)
	assert.Nil(t, r.Quote)

	w = e.do(http.MethodPut, "/api/custom-requests/"+r.ID.String(), admin, map[string]any{
		"status": "quoted",
		"quote":  map[string]any{"price": "45", "deliveryTime": "1 week"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	r = decode[dto.CustomRequestResponse](t, w)
	require.NotNil(t, r.Quote)
	require.NotNil(t, r.Quote.Price)
	assert.Equal(t, 45.0, *r.Quote.Price)
	assert.Equal(t, "silver", r.Specifications["metal"])

	w = e.do(http.MethodPost, "/api/contact-messages", "", map[string]string{"name": "Bob", "email": "bob@example.com", "message": "Hi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	m := decode[dto.ContactMessageResponse](t, w)

	w = e.do(http.MethodPost, "/api/contact-messages", "", map[string]string{"name": "Bob"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name, email, and message are required", decode[dto.ErrorResponse](t, w).Error)

	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/contact-messages", "", nil).Code)

	w = e.do(http.MethodGet, "/api/contact-messages?isRead=false", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.ContactMessageResponse](t, w), 1)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodGet, "/api/contact-messages?isRead=maybe", admin, nil).Code)

	w = e.do(http.MethodPut, "/api/contact-messages/"+m.ID.String(), admin, map[string]bool{"isRead": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.ContactMessageResponse](t, w).IsRead)

	assert.Equal(t,
		[]string{"custom_request.created", "custom_request.status", "contact.received"},
		e.notifier.Events(),
	)
}

func TestUploadAndServe(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	upload := func(tok string, body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/upload?filename=logo.png", bytes.NewReader(body))
		req.Header.Set("Content-Type", "image/png")
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
		w := httptest.NewRecorder()
		e.engine.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, upload("", png).Code)

	e.signUp("ann@example.com", "secret1", models.RoleCustomer)
	customer := e.login("/api/auth/customer-login", "ann@example.com", "secret1")
	w := upload(customer, png)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusBadRequest, upload(admin, []byte("hello")).Code)
	assert.Equal(t, http.StatusBadRequest, upload(admin, bytes.Repeat(png, 200)).Code)

	w = upload(admin, png)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	url := decode[dto.UploadResponse](t, w).URL
	require.True(t, strings.HasPrefix(url, "http://shop.test/api/uploads/"), url)

	w = e.do(http.MethodGet, strings.TrimPrefix(url, "http://shop.test"), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, png, w.Body.Bytes())

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/uploads/missing.png", "", nil).Code)
}

// seed создаёт по одной записи каждого ресурса и возвращает их пути.
func (e *env) seed(admin string) map[string]string {
	e.t.Helper()
	paths := map[string]string{}

	w := e.do(http.MethodPost, "/api/categories", admin, map[string]any{"name": "Beads"})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	paths["categories"] = "/api/categories/" + decode[dto.CategoryResponse](e.t, w).ID.String()

	w = e.do(http.MethodPost, "/api/products", admin, map[string]any{"name": "Charm", "price": "2.50", "stock": 5})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[dto.ProductResponse](e.t, w)
	paths["products"] = "/api/products/" + p.ID.String()

	class := e.class(5)
	paths["classes"] = "/api/classes/" + class.ID.String()

	w = e.do(http.MethodPost, "/api/bookings", "", map[string]any{
		"classId":  class.ID,
		"customer": map[string]string{"email": "ann@example.com"},
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	paths["bookings"] = "/api/bookings/" + decode[dto.BookingResponse](e.t, w).ID.String()

	w = e.do(http.MethodPost, "/api/orders", "", map[string]any{
		"customer": map[string]string{"email": "ann@example.com"},
		"items":    []map[string]any{{"productId": p.ID, "quantity": 1}},
		"total":    "7.50",
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	paths["orders"] = "/api/orders/" + decode[dto.OrderResponse](e.t, w).ID.String()

	w = e.do(http.MethodPost, "/api/custom-requests", "", map[string]any{
		"customer":    map[string]string{"email": "ann@example.com"},
		"description": "Matching earrings",
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	paths["custom-requests"] = "/api/custom-requests/" + decode[dto.CustomRequestResponse](e.t, w).ID.String()

	w = e.do(http.MethodPost, "/api/contact-messages", "", map[string]string{"name": "Bob", "email": "bob@example.com", "message": "Hi"})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	paths["contact-messages"] = "/api/contact-messages/" + decode[dto.ContactMessageResponse](e.t, w).ID.String()

	return paths
}

func TestAdminMutationsRoleGate(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken()
	e.signUp("ann@example.com", "secret1", models.RoleCustomer)
	customer := e.login("/api/auth/customer-login", "ann@example.com", "secret1")
	paths := e.seed(admin)

	patches := map[string]any{
		"categories":       map[string]any{"description": "Glass and wood"},
		"products":         map[string]any{"stock": 7},
		"classes":          map[string]any{"duration": "2h"},
		"bookings":         map[string]any{"notes": "window seat"},
		"orders":           map[string]any{"notes": "gift wrap"},
		"custom-requests":  map[string]any{"status": "reviewing"},
		"contact-messages": map[string]any{"isRead": true},
	}

	callers := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"bad token", "not-a-jwt", http.StatusUnauthorized},
		{"customer token", customer, http.StatusForbidden},
	}

	for resource, path := range paths {
		for _, method := range []string{http.MethodPut, http.MethodDelete} {
			var body any
			if method == http.MethodPut {
				body = patches[resource]
			}
			for _, c := range callers {
				t.Run(resource+" "+method+" "+c.name, func(t *testing.T) {
					w := e.do(method, path, c.token, body)
					assert.Equal(t, c.status, w.Code, w.Body.String())
					if c.status == http.StatusUnauthorized {
						assert.Equal(t, "Access token required", decode[dto.ErrorResponse](t, w).Error)
					} else {
						assert.Equal(t, "Admin access required", decode[dto.ErrorResponse](t, w).Error)
					}
				})
			}
		}
	}

	// отказы ничего не изменили
	for resource, path := range paths {
		if resource == "contact-messages" {
			continue
		}
		w := e.do(http.MethodGet, path, admin, nil)
		assert.Equal(t, http.StatusOK, w.Code, resource)
	}
	w := e.do(http.MethodGet, paths["contact-messages"], admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[dto.ContactMessageResponse](t, w).IsRead)

	for resource, path := range paths {
		t.Run(resource+" admin", func(t *testing.T) {
			w := e.do(http.MethodPut, path, admin, patches[resource])
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}
	// бронь и заказ держат класс и товар, поэтому удаляются первыми
	for _, resource := range []string{"bookings", "orders", "custom-requests", "contact-messages", "classes", "products", "categories"} {
		t.Run(resource+" admin delete", func(t *testing.T) {
			w := e.do(http.MethodDelete, paths[resource], admin, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.True(t, decode[dto.DeletedResponse](t, w).Deleted)
			assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, paths[resource], admin, nil).Code)
		})
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken()
	paths := e.seed(admin)

	reads := []struct {
		path  string
		token string
	}{
		{"/api/products", ""},
		{"/api/categories", ""},
		{"/api/classes", ""},
		{paths["products"], ""},
		{paths["classes"], ""},
		{"/api/bookings", admin},
		{"/api/orders", admin},
		{"/api/custom-requests", admin},
		{"/api/contact-messages", admin},
		{paths["bookings"], admin},
		{paths["orders"], admin},
		{"/api/bookings?email=ann@example.com", admin},
	}
	for _, r := range reads {
		first := e.do(http.MethodGet, r.path, r.token, nil)
		require.Equal(t, http.StatusOK, first.Code, r.path)
		second := e.do(http.MethodGet, r.path, r.token, nil)
		require.Equal(t, http.StatusOK, second.Code, r.path)
		assert.JSONEq(t, first.Body.String(), second.Body.String(), r.path)
	}

	// чтение не трогает остатки и места
	w := e.do(http.MethodGet, paths["classes"], "", nil)
	assert.Equal(t, 4, decode[dto.ClassResponse](t, w).SpotsLeft)
	w = e.do(http.MethodGet, paths["products"], "", nil)
	assert.Equal(t, 4, decode[dto.ProductResponse](t, w).Stock)
}
