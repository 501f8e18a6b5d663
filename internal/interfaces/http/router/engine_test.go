package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/retail/backoffice/docs"
	"github.com/retail/backoffice/internal/application/identity"
	"github.com/retail/backoffice/internal/application/ledger"
	"github.com/retail/backoffice/internal/infrastructure/auth"
	"github.com/retail/backoffice/internal/infrastructure/cache"
	"github.com/retail/backoffice/internal/infrastructure/config"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"github.com/retail/backoffice/internal/interfaces/http/handler"
	"github.com/retail/backoffice/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeLedger records the tenant of every call
type fakeLedger struct {
	mu      sync.Mutex
	tenants []string
}

func (f *fakeLedger) seen(tenant string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tenants = append(f.tenants, tenant)
}

func (f *fakeLedger) Create(_ context.Context, tenant string, _ ledger.CreateSaleRequest) (*ledger.SaleResponse, error) {
	f.seen(tenant)
	return &ledger.SaleResponse{ID: 1, Status: "pendiente"}, nil
}

func (f *fakeLedger) Update(_ context.Context, tenant string, id int64, _ ledger.UpdateSaleRequest) (*ledger.SaleResponse, error) {
	f.seen(tenant)
	return &ledger.SaleResponse{ID: id}, nil
}

func (f *fakeLedger) Delete(_ context.Context, tenant string, _ int64) (*ledger.DeleteSaleResult, error) {
	f.seen(tenant)
	return &ledger.DeleteSaleResult{Deleted: true}, nil
}

func (f *fakeLedger) GetByID(_ context.Context, tenant string, id int64) (*ledger.SaleResponse, error) {
	f.seen(tenant)
	return &ledger.SaleResponse{ID: id}, nil
}

func (f *fakeLedger) List(_ context.Context, tenant string, _ ledger.SaleListFilter) ([]ledger.SaleResponse, int64, error) {
	f.seen(tenant)
	return []ledger.SaleResponse{}, 0, nil
}

func (f *fakeLedger) RecordPayment(_ context.Context, tenant string, id int64, _ ledger.RecordPaymentRequest) (*ledger.PaymentResponse, error) {
	f.seen(tenant)
	return &ledger.PaymentResponse{CreditResponse: ledger.CreditResponse{ID: id}}, nil
}

func (f *fakeLedger) ListCredits(_ context.Context, tenant string) (*ledger.CreditListResult, error) {
	f.seen(tenant)
	return &ledger.CreditListResult{Credits: []ledger.CreditResponse{}}, nil
}

type fakeAuth struct{}

func (fakeAuth) Login(context.Context, identity.LoginInput) (*identity.LoginResult, error) {
	return &identity.LoginResult{Token: "t", Tenant: "tenant_acme"}, nil
}

func (fakeAuth) Session(claims *auth.Claims) (*identity.SessionResponse, error) {
	return &identity.SessionResponse{Tenant: claims.Tenant}, nil
}

func (fakeAuth) Logout(context.Context, *auth.Claims) (*identity.LogoutResult, error) {
	return &identity.LogoutResult{OK: true}, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type testEngine struct {
	engine *gin.Engine
	ledger *fakeLedger
	jwt    *auth.JWTService
}

func newTestEngine(t *testing.T, authDisabled bool, opts ...func(*EngineConfig)) *testEngine {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars",
		Expiration: time.Hour,
		Issuer:     "test",
	})
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	fake := &fakeLedger{}
	cfg := EngineConfig{
		Logger:       zaptest.NewLogger(t),
		ServiceName:  "backoffice-test",
		JWT:          middleware.JWTMiddlewareConfig{JWTService: jwtService, TokenBlacklist: auth.NewInMemoryTokenBlacklist()},
		AuthDisabled: authDisabled,
		Idempotency:  middleware.IdempotencyConfig{Store: store, TTL: time.Minute},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	engine, err := NewEngine(cfg, Handlers{
		Health:  handler.NewHealthHandler(okPinger{}, "backoffice"),
		Auth:    handler.NewAuthHandler(fakeAuth{}),
		Sales:   handler.NewSaleHandler(fake),
		Credits: handler.NewCreditHandler(fake),
	})
	require.NoError(t, err)
	return &testEngine{engine: engine, ledger: fake, jwt: jwtService}
}

func (te *testEngine) token(t *testing.T, tenant string) string {
	t.Helper()
	signed, err := te.jwt.Generate(auth.TokenInput{UserID: 1, Tenant: tenant, Name: "Ana", Email: "ana@tienda.co"})
	require.NoError(t, err)
	return signed.Token
}

func (te *testEngine) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	te.engine.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

const saleBody = `{"clienteId":1,"medioPago":"efectivo","detalles":[{"productoId":1,"cantidad":1,"precioUnitario":100}]}`

func TestNewEngine_PublicRoutes(t *testing.T) {
	te := newTestEngine(t, false)

	w := te.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = te.do(http.MethodPost, "/api/v1/auth/login", `{"email":"ana@tienda.co","password":"x"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = te.do(http.MethodGet, "/api/v1/nope", "", map[string]string{"X-Request-ID": "req-404"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeRouteNotFound, errorCode(t, w))
}

func TestNewEngine_RequiresBearerToken(t *testing.T) {
	te := newTestEngine(t, false)

	for _, path := range []string{"/api/v1/ventas", "/api/v1/ventas/metadata", "/api/v1/creditos", "/api/v1/auth/me"} {
		w := te.do(http.MethodGet, path, "", map[string]string{middleware.TenantHeaderKey: "tenant_acme"})
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	assert.Empty(t, te.ledger.tenants)
}

func TestNewEngine_TenantFromToken(t *testing.T) {
	te := newTestEngine(t, false)
	bearer := map[string]string{
		"Authorization":            "Bearer " + te.token(t, "tenant_acme"),
		middleware.TenantHeaderKey: "tenant_other",
	}

	assert.Equal(t, http.StatusOK, te.do(http.MethodGet, "/api/v1/ventas", "", bearer).Code)
	assert.Equal(t, http.StatusOK, te.do(http.MethodGet, "/api/v1/ventas/metadata", "", bearer).Code)
	assert.Equal(t, http.StatusOK, te.do(http.MethodGet, "/api/v1/ventas/3", "", bearer).Code)
	assert.Equal(t, http.StatusCreated, te.do(http.MethodPost, "/api/v1/ventas", saleBody, bearer).Code)
	assert.Equal(t, http.StatusOK, te.do(http.MethodPut, "/api/v1/ventas/3", `{"estado":"confirmada"}`, bearer).Code)
	assert.Equal(t, http.StatusOK, te.do(http.MethodDelete, "/api/v1/ventas/3", "", bearer).Code)
	assert.Equal(t, http.StatusOK, te.do(http.MethodGet, "/api/v1/creditos", "", bearer).Code)
	assert.Equal(t, http.StatusOK, te.do(http.MethodPost, "/api/v1/creditos/2/pagos", `{"monto":10}`, bearer).Code)
	assert.Equal(t, http.StatusOK, te.do(http.MethodGet, "/api/v1/auth/me", "", bearer).Code)

	require.NotEmpty(t, te.ledger.tenants)
	for _, tenant := range te.ledger.tenants {
		assert.Equal(t, "tenant_acme", tenant)
	}
}

func TestNewEngine_HeaderTenantWhenAuthDisabled(t *testing.T) {
	te := newTestEngine(t, true)

	w := te.do(http.MethodGet, "/api/v1/creditos", "", map[string]string{middleware.TenantHeaderKey: "tenant_dev"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"tenant_dev"}, te.ledger.tenants)

	w = te.do(http.MethodGet, "/api/v1/creditos", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidTenant, errorCode(t, w))
}

func TestNewEngine_IdempotentPosts(t *testing.T) {
	te := newTestEngine(t, false)
	headers := map[string]string{
		"Authorization":                 "Bearer " + te.token(t, "tenant_acme"),
		middleware.IdempotencyKeyHeader: "venta-77",
	}

	assert.Equal(t, http.StatusCreated, te.do(http.MethodPost, "/api/v1/ventas", saleBody, headers).Code)

	w := te.do(http.MethodPost, "/api/v1/ventas", saleBody, headers)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeConcurrencyConflict, errorCode(t, w))

	// the same key on another route is independent
	assert.Equal(t, http.StatusOK, te.do(http.MethodPost, "/api/v1/creditos/2/pagos", `{"monto":10}`, headers).Code)
	assert.Len(t, te.ledger.tenants, 2)
}

func withSwagger(swagger middleware.SwaggerConfig) func(*EngineConfig) {
	return func(cfg *EngineConfig) { cfg.Swagger = swagger }
}

func TestNewEngine_SwaggerHiddenByDefault(t *testing.T) {
	te := newTestEngine(t, false)

	w := te.do(http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeRouteNotFound, errorCode(t, w))
}

func TestNewEngine_SwaggerServesDocument(t *testing.T) {
	te := newTestEngine(t, false, withSwagger(middleware.SwaggerConfig{Enabled: true}))

	w := te.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Contains(t, doc.Paths["/ventas"], "post")
	assert.Contains(t, doc.Paths["/creditos/{id}/pagos"], "post")
}

func TestNewEngine_SwaggerRequiresBearerToken(t *testing.T) {
	te := newTestEngine(t, false, withSwagger(middleware.SwaggerConfig{Enabled: true, RequireAuth: true}))

	w := te.do(http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = te.do(http.MethodGet, "/swagger/doc.json", "", map[string]string{"Authorization": "Bearer " + te.token(t, "tenant_acme")})
	assert.Equal(t, http.StatusOK, w.Code)
}
