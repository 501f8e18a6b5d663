package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/application/ledger"
	"github.com/retail/backoffice/internal/domain/shared"
)

// SaleService is the part of the ledger the sale endpoints call
type SaleService interface {
	Create(ctx context.Context, tenant string, req ledger.CreateSaleRequest) (*ledger.SaleResponse, error)
	Update(ctx context.Context, tenant string, saleID int64, req ledger.UpdateSaleRequest) (*ledger.SaleResponse, error)
	Delete(ctx context.Context, tenant string, saleID int64) (*ledger.DeleteSaleResult, error)
	GetByID(ctx context.Context, tenant string, saleID int64) (*ledger.SaleResponse, error)
	List(ctx context.Context, tenant string, filter ledger.SaleListFilter) ([]ledger.SaleResponse, int64, error)
}

// SaleHandler handles sale HTTP requests
type SaleHandler struct {
	BaseHandler
	saleService SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List godoc
// @Summary      List sales
// @Description  Page of sales with their lines, newest first
// @Tags         sales
// @Produce      json
// @Param        page       query    int     false  "Page number"  minimum(1)
// @Param        page_size  query    int     false  "Page size"    minimum(1)  maximum(100)
// @Param        estado     query    string  false  "Sale status"
// @Param        order_dir  query    string  false  "Sort direction"  Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]ledger.SaleResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ventas [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter ledger.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}

	sales, total, err := h.saleService.List(c.Request.Context(), tenant(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pageOf(filter)
	h.SuccessWithMeta(c, sales, total, page, pageSize)
}

// Get godoc
// @Summary      Get sale
// @Description  One sale with its lines and credit
// @Tags         sales
// @Produce      json
// @Param        id  path  int  true  "Sale ID"
// @Success      200 {object} dto.Response{data=ledger.SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ventas/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), tenant(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Create godoc
// @Summary      Create sale
// @Description  Registers a sale, reserving stock and building the credit schedule for credito sales
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                    false  "Replays the first response for a repeated key"
// @Param        request          body    ledger.CreateSaleRequest  true   "Sale"
// @Success      201 {object} dto.Response{data=ledger.SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ventas [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req ledger.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), tenant(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Update godoc
// @Summary      Update sale
// @Description  Changes the status, payment method or rating of a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id       path  int                       true  "Sale ID"
// @Param        request  body  ledger.UpdateSaleRequest  true  "Changes"
// @Success      200 {object} dto.Response{data=ledger.SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ventas/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req ledger.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), tenant(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete godoc
// @Summary      Delete sale
// @Description  Returns the sale if needed and removes it with its credit
// @Tags         sales
// @Produce      json
// @Param        id  path  int  true  "Sale ID"
// @Success      200 {object} dto.Response{data=ledger.DeleteSaleResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ventas/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.saleService.Delete(c.Request.Context(), tenant(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Metadata godoc
// @Summary      Sale metadata
// @Description  Enumerations used by sale and credit forms
// @Tags         sales
// @Produce      json
// @Success      200 {object} dto.Response{data=ledger.MetadataResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ventas/metadata [get]
func (h *SaleHandler) Metadata(c *gin.Context) {
	h.Success(c, ledger.Metadata())
}

// pageOf resolves the page actually served for filter
func pageOf(filter ledger.SaleListFilter) (page, pageSize int) {
	defaults := shared.DefaultFilter()
	page, pageSize = defaults.Page, defaults.PageSize
	if filter.Page > 0 {
		page = filter.Page
	}
	if filter.PageSize > 0 {
		pageSize = min(filter.PageSize, 100)
	}
	return page, pageSize
}
