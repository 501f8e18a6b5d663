package handler

import (
	"net/http"
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

func setupCreditRouter(svc *MockCreditService) *gin.Engine {
	h := NewCreditHandler(svc)
	router := gin.New()
	api := router.Group("/api/v1", withTenant(testTenant))
	api.GET("/creditos", h.List)
	api.POST("/creditos/:id/pagos", h.RecordPayment)
	return router
}

func TestCreditHandler_RecordPayment(t *testing.T) {
	svc := new(MockCreditService)
	router := setupCreditRouter(svc)

	svc.On("RecordPayment", mock.Anything, testTenant, int64(4), mock.MatchedBy(func(req ledger.RecordPaymentRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(70000)) && req.PaidOn == "2026-03-01"
	})).Return(&ledger.PaymentResponse{
		CreditResponse: ledger.CreditResponse{ID: 4, Status: "activo"},
		Payment: ledger.PaymentAllocationResponse{
			Amount:       decimal.NewFromInt(70000),
			Applied:      decimal.NewFromInt(70000),
			Unapplied:    decimal.Zero,
			Installments: []int{1, 2},
			PaidOn:       "2026-03-01",
		},
	}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/creditos/4/pagos", `{"monto":70000,"fechaPago":"2026-03-01"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp ledger.PaymentResponse
	decodeData(t, w, &resp)
	assert.Equal(t, int64(4), resp.ID)
	assert.Equal(t, []int{1, 2}, resp.Payment.Installments)
	svc.AssertExpectations(t)
}

func TestCreditHandler_RecordPayment_Errors(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		body         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{"bad credit id", "/api/v1/creditos/x/pagos", `{"monto":1}`, nil, http.StatusBadRequest, dto.ErrCodeValidation},
		{"bad date", "/api/v1/creditos/4/pagos", `{"monto":1,"fechaPago":"01/03/2026"}`, nil, http.StatusBadRequest, dto.ErrCodeValidation},
		{"malformed json", "/api/v1/creditos/4/pagos", `{"monto":`, nil, http.StatusBadRequest, dto.ErrCodeInvalidJSON},
		{"non-positive amount", "/api/v1/creditos/4/pagos", `{"monto":0}`, shared.NewValidationError("monto must be greater than zero"), http.StatusBadRequest, dto.ErrCodeValidation},
		{"cancelled credit", "/api/v1/creditos/4/pagos", `{"monto":10}`, shared.ErrInvalidCreditTerms, http.StatusUnprocessableEntity, dto.ErrCodeInvalidCreditTerms},
		{"corrupt credit", "/api/v1/creditos/4/pagos", `{"monto":10}`, shared.ErrNoInstallments, http.StatusInternalServerError, dto.ErrCodeNoInstallments},
		{"locked credit", "/api/v1/creditos/4/pagos", `{"monto":10}`, shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCreditService)
			router := setupCreditRouter(svc)
			if tt.err != nil {
				svc.On("RecordPayment", mock.Anything, testTenant, int64(4), mock.Anything).Return(nil, tt.err)
			}

			w := doJSON(router, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedErr, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestCreditHandler_List(t *testing.T) {
	svc := new(MockCreditService)
	router := setupCreditRouter(svc)

	svc.On("ListCredits", mock.Anything, testTenant).Return(&ledger.CreditListResult{
		Stats: ledger.CreditStats{
			TotalCredits:    1,
			AmountGranted:   decimal.NewFromInt(150000),
			AmountCollected: decimal.NewFromInt(70000),
			AmountPending:   decimal.NewFromInt(80000),
		},
		Credits: []ledger.CreditResponse{{ID: 4, Status: "activo"}},
	}, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/creditos", "")

	require.Equal(t, http.StatusOK, w.Code)
	var result ledger.CreditListResult
	decodeData(t, w, &result)
	assert.Equal(t, 1, result.Stats.TotalCredits)
	assert.True(t, result.Stats.AmountPending.Equal(decimal.NewFromInt(80000)))
	require.Len(t, result.Credits, 1)
}

func TestCreditHandler_List_Error(t *testing.T) {
	svc := new(MockCreditService)
	router := setupCreditRouter(svc)
	svc.On("ListCredits", mock.Anything, testTenant).Return(nil, shared.ErrInfrastructure)

	w := doJSON(router, http.MethodGet, "/api/v1/creditos", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrCodeInfrastructure, decodeResponse(t, w).Error.Code)
}
