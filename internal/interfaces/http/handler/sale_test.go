package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/application/ledger"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSaleRouter(svc *MockSaleService) *gin.Engine {
	h := NewSaleHandler(svc)
	router := gin.New()
	api := router.Group("/api/v1", withTenant(testTenant))
	api.GET("/ventas/metadata", h.Metadata)
	api.GET("/ventas", h.List)
	api.GET("/ventas/:id", h.Get)
	api.POST("/ventas", h.Create)
	api.PUT("/ventas/:id", h.Update)
	api.DELETE("/ventas/:id", h.Delete)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSaleHandler_Create(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc)

	svc.On("Create", mock.Anything, testTenant, mock.MatchedBy(func(req ledger.CreateSaleRequest) bool {
		return req.CustomerID == 3 &&
			req.SaleType == "credito" &&
			len(req.Lines) == 2 &&
			req.Lines[0].UnitPrice.Equal(decimal.NewFromInt(150000)) &&
			req.Credit != nil && req.Credit.InstallmentCount == 3
	})).Return(&ledger.SaleResponse{ID: 10, Status: "pendiente", Total: decimal.NewFromInt(300000)}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/ventas", `{
		"clienteId": 3,
		"tipoVenta": "credito",
		"medioPago": "Efectivo",
		"detalles": [
			{"productoId": 1, "cantidad": 1, "precioUnitario": "150000"},
			{"productoId": 2, "cantidad": 1, "precioUnitario": 150000}
		],
		"credito": {"tipoCredito": "mensual", "numeroCuotas": 3, "cuotaInicial": "0"}
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sale ledger.SaleResponse
	decodeData(t, w, &sale)
	assert.Equal(t, int64(10), sale.ID)
	assert.Equal(t, "pendiente", sale.Status)
	svc.AssertExpectations(t)
}

func TestSaleHandler_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing lines", `{"clienteId":3,"medioPago":"nequi"}`, "detalles"},
		{"unknown sale type", `{"clienteId":3,"tipoVenta":"leasing","medioPago":"nequi","detalles":[{"productoId":1,"cantidad":1}]}`, "tipoVenta"},
		{"blank payment method", `{"clienteId":3,"medioPago":"  ","detalles":[{"productoId":1,"cantidad":1}]}`, "medioPago"},
		{"zero quantity", `{"clienteId":3,"medioPago":"nequi","detalles":[{"productoId":1,"cantidad":0}]}`, "cantidad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSaleService)
			router := setupSaleRouter(svc)

			w := doJSON(router, http.MethodPost, "/api/v1/ventas", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Details)
			assert.Equal(t, tt.field, resp.Error.Details[0].Field)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSaleHandler_Create_DomainErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"insufficient stock", shared.NewDomainError(shared.CodeInsufficientStock, "Insufficient stock for product 1"), http.StatusUnprocessableEntity},
		{"product not found", shared.ErrProductNotFound, http.StatusNotFound},
		{"customer not found", shared.NewNotFoundError("customer", 3), http.StatusNotFound},
		{"lock conflict", shared.ErrConcurrencyConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSaleService)
			router := setupSaleRouter(svc)
			svc.On("Create", mock.Anything, testTenant, mock.Anything).Return(nil, tt.err)

			w := doJSON(router, http.MethodPost, "/api/v1/ventas",
				`{"clienteId":3,"medioPago":"nequi","detalles":[{"productoId":1,"cantidad":4}]}`)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestSaleHandler_Get(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc)

	svc.On("GetByID", mock.Anything, testTenant, int64(5)).
		Return(&ledger.SaleResponse{ID: 5, Lines: []ledger.SaleLineResponse{{ID: 1, ProductID: 2, Quantity: 1}}}, nil)
	svc.On("GetByID", mock.Anything, testTenant, int64(6)).
		Return(nil, shared.NewNotFoundError("sale", 6))

	w := doJSON(router, http.MethodGet, "/api/v1/ventas/5", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sale ledger.SaleResponse
	decodeData(t, w, &sale)
	assert.Len(t, sale.Lines, 1)

	w = doJSON(router, http.MethodGet, "/api/v1/ventas/6", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/ventas/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_List(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc)

	svc.On("List", mock.Anything, testTenant, ledger.SaleListFilter{Page: 2, PageSize: 10, Status: "entregada"}).
		Return([]ledger.SaleResponse{{ID: 11}, {ID: 12}}, int64(12), nil)

	w := doJSON(router, http.MethodGet, "/api/v1/ventas?page=2&page_size=10&estado=entregada", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(12), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.PageSize)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestSaleHandler_List_BadFilter(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc)

	w := doJSON(router, http.MethodGet, "/api/v1/ventas?estado=perdida", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/ventas?page_size=500", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_Update(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc)

	svc.On("Update", mock.Anything, testTenant, int64(5), mock.MatchedBy(func(req ledger.UpdateSaleRequest) bool {
		return req.Status != nil && *req.Status == "confirmada" && req.Rating == nil
	})).Return(&ledger.SaleResponse{ID: 5, Status: "confirmada"}, nil)
	svc.On("Update", mock.Anything, testTenant, int64(7), mock.Anything).
		Return(nil, shared.ErrTerminalState)

	w := doJSON(router, http.MethodPut, "/api/v1/ventas/5", `{"estado":"confirmada"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, "/api/v1/ventas/7", `{"estado":"pendiente"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeTerminalState, decodeResponse(t, w).Error.Code)

	w = doJSON(router, http.MethodPut, "/api/v1/ventas/5", `{"calificacion":"Excelente"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_Delete(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc)

	svc.On("Delete", mock.Anything, testTenant, int64(5)).
		Return(&ledger.DeleteSaleResult{Deleted: true, WasReturned: true}, nil)

	w := doJSON(router, http.MethodDelete, "/api/v1/ventas/5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"deleted":true,"fueDevuelta":true}}`, w.Body.String())
}

func TestSaleHandler_Metadata(t *testing.T) {
	router := setupSaleRouter(new(MockSaleService))

	w := doJSON(router, http.MethodGet, "/api/v1/ventas/metadata", "")

	require.Equal(t, http.StatusOK, w.Code)
	var meta ledger.MetadataResponse
	decodeData(t, w, &meta)
	assert.Contains(t, meta.SaleStatuses, "devuelta")
	assert.Contains(t, meta.SaleTypes, "credito")
	assert.Contains(t, meta.Cadences, "quincenal")
	assert.Contains(t, meta.Ratings, "Hurto")
}

func TestPageOf(t *testing.T) {
	page, size := pageOf(ledger.SaleListFilter{})
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = pageOf(ledger.SaleListFilter{Page: 3, PageSize: 200})
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, size)
}
