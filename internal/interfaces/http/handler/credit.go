package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/application/ledger"
)

// CreditService is the part of the ledger the credit endpoints call
type CreditService interface {
	RecordPayment(ctx context.Context, tenant string, creditID int64, req ledger.RecordPaymentRequest) (*ledger.PaymentResponse, error)
	ListCredits(ctx context.Context, tenant string) (*ledger.CreditListResult, error)
}

// CreditHandler handles credit HTTP requests
type CreditHandler struct {
	BaseHandler
	creditService CreditService
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(creditService CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// List godoc
// @Summary      List credits
// @Description  Every credit of the tenant with its schedule and portfolio stats
// @Tags         credits
// @Produce      json
// @Success      200 {object} dto.Response{data=ledger.CreditListResult}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /creditos [get]
func (h *CreditHandler) List(c *gin.Context) {
	result, err := h.creditService.ListCredits(c.Request.Context(), tenant(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RecordPayment godoc
// @Summary      Record credit payment
// @Description  Applies a payment to the credit's installments, oldest due first
// @Tags         credits
// @Accept       json
// @Produce      json
// @Param        id               path    int                          true   "Credit ID"
// @Param        Idempotency-Key  header  string                       false  "Replays the first response for a repeated key"
// @Param        request          body    ledger.RecordPaymentRequest  true   "Payment"
// @Success      200 {object} dto.Response{data=ledger.PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /creditos/{id}/pagos [post]
func (h *CreditHandler) RecordPayment(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req ledger.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.creditService.RecordPayment(c.Request.Context(), tenant(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
