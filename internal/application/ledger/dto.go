package ledger

import (
	"time"

	"github.com/retail/backoffice/internal/domain/credit"
	"github.com/retail/backoffice/internal/domain/sales"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ==================== Sale DTOs ====================

// CreateSaleRequest represents a request to register a sale
type CreateSaleRequest struct {
	CustomerID    int64             `json:"clienteId" binding:"required,gt=0"`
	SaleType      string            `json:"tipoVenta" binding:"omitempty,sale_type"`
	PaymentMethod string            `json:"medioPago" binding:"required,payment_method"`
	Discount      decimal.Decimal   `json:"descuento"`
	Notes         string            `json:"notas" binding:"max=1000"`
	Lines         []SaleLineInput   `json:"detalles" binding:"required,min=1,dive"`
	Credit        *CreditTermsInput `json:"credito"`
}

// SaleLineInput represents one line of a sale request
type SaleLineInput struct {
	ProductID int64           `json:"productoId" binding:"required,gt=0"`
	Quantity  int             `json:"cantidad" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
	Serial    string          `json:"imei" binding:"max=64"`
}

// CreditTermsInput carries the financing conditions of a credito sale
type CreditTermsInput struct {
	Cadence          string          `json:"tipoCredito" binding:"required"`
	InstallmentCount int             `json:"numeroCuotas" binding:"required,gte=1,lte=360"`
	DownPayment      decimal.Decimal `json:"cuotaInicial"`
	FirstDueDate     string          `json:"fechaPrimeraCuota" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateSaleRequest represents a partial update of a sale. Absent fields are left unchanged.
type UpdateSaleRequest struct {
	Status        *string `json:"estado" binding:"omitempty,sale_status"`
	PaymentMethod *string `json:"medioPago" binding:"omitempty,payment_method"`
	Rating        *string `json:"calificacion" binding:"omitempty,rating"`
}

// SaleListFilter represents filter options for sale list
type SaleListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"estado" binding:"omitempty,sale_status"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            int64              `json:"id"`
	CustomerID    int64              `json:"clienteId"`
	SaleType      string             `json:"tipoVenta"`
	PaymentMethod string             `json:"medioPago"`
	Status        string             `json:"estado"`
	Rating        *string            `json:"calificacion"`
	Total         decimal.Decimal    `json:"total"`
	Discount      decimal.Decimal    `json:"descuento"`
	Notes         string             `json:"notas"`
	SoldAt        time.Time          `json:"fecha"`
	Lines         []SaleLineResponse `json:"detalles"`
	Credit        *CreditResponse    `json:"credito,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// SaleLineResponse represents a sale line in API responses
type SaleLineResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productoId"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Serial    string          `json:"imei,omitempty"`
}

// DeleteSaleResult reports the outcome of deleting a sale
type DeleteSaleResult struct {
	Deleted     bool `json:"deleted"`
	WasReturned bool `json:"fueDevuelta"`
}

// ToSaleResponse converts a domain Sale to its response DTO
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	lines := make([]SaleLineResponse, len(sale.Lines))
	for i := range sale.Lines {
		lines[i] = ToSaleLineResponse(&sale.Lines[i])
	}

	var rating *string
	if sale.Rating != nil {
		r := sale.Rating.String()
		rating = &r
	}

	return SaleResponse{
		ID:            sale.ID,
		CustomerID:    sale.CustomerID,
		SaleType:      sale.SaleType.String(),
		PaymentMethod: sale.PaymentMethod.String(),
		Status:        sale.Status.String(),
		Rating:        rating,
		Total:         sale.Total,
		Discount:      sale.Discount,
		Notes:         sale.Notes,
		SoldAt:        sale.SoldAt,
		Lines:         lines,
		CreatedAt:     sale.CreatedAt,
		UpdatedAt:     sale.UpdatedAt,
	}
}

// ToSaleLineResponse converts a domain SaleLine to its response DTO
func ToSaleLineResponse(line *sales.SaleLine) SaleLineResponse {
	return SaleLineResponse{
		ID:        line.ID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		UnitPrice: line.UnitPrice,
		Subtotal:  line.Subtotal,
		Serial:    line.Serial,
	}
}

// ==================== Credit DTOs ====================

// RecordPaymentRequest represents a payment against a credit
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"monto"`
	PaidOn string          `json:"fechaPago" binding:"omitempty,datetime=2006-01-02"`
}

// CreditResponse represents a credit with its schedule
type CreditResponse struct {
	ID               int64                 `json:"id"`
	SaleID           int64                 `json:"ventaId"`
	Cadence          string                `json:"tipoCredito"`
	InstallmentCount int                   `json:"numeroCuotas"`
	DownPayment      decimal.Decimal       `json:"cuotaInicial"`
	InstallmentValue decimal.Decimal       `json:"valorCuota"`
	FinancedBalance  decimal.Decimal       `json:"saldoTotal"`
	OriginalAmount   decimal.Decimal       `json:"montoOriginal"`
	TotalPaid        decimal.Decimal       `json:"montoPagado"`
	Outstanding      decimal.Decimal       `json:"montoPendiente"`
	SaleTotal        decimal.Decimal       `json:"totalVenta"`
	Status           string                `json:"estado"`
	HasOverdue       bool                  `json:"tieneVencidas"`
	StartDate        string                `json:"fechaInicio"`
	FirstDueDate     string                `json:"fechaPrimeraCuota"`
	Installments     []InstallmentResponse `json:"cuotas"`
	NextInstallment  *InstallmentResponse  `json:"proximaCuota"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// InstallmentResponse represents one installment of a credit
type InstallmentResponse struct {
	ID         int64           `json:"id"`
	Sequence   int             `json:"numeroCuota"`
	DueDate    string          `json:"fechaVencimiento"`
	Value      decimal.Decimal `json:"valor"`
	AmountPaid decimal.Decimal `json:"valorPagado"`
	Balance    decimal.Decimal `json:"saldo"`
	Status     string          `json:"estado"`
	PaidAt     *string         `json:"fechaPago"`
}

// PaymentResponse is the credit after a payment plus where the money went
type PaymentResponse struct {
	CreditResponse
	Payment PaymentAllocationResponse `json:"pago"`
}

// PaymentAllocationResponse describes how a payment was allocated
type PaymentAllocationResponse struct {
	Amount       decimal.Decimal `json:"monto"`
	Applied      decimal.Decimal `json:"aplicado"`
	Unapplied    decimal.Decimal `json:"sinAplicar"`
	Installments []int           `json:"cuotasAfectadas"`
	PaidOn       string          `json:"fechaPago"`
}

// CreditStats aggregates the portfolio of a tenant
type CreditStats struct {
	TotalCredits    int             `json:"totalCreditos"`
	AmountGranted   decimal.Decimal `json:"montoOtorgado"`
	AmountCollected decimal.Decimal `json:"montoCobrado"`
	AmountPending   decimal.Decimal `json:"montoPendiente"`
	OverdueCredits  int             `json:"creditosVencidos"`
}

// CreditListResult is the response of the credit listing
type CreditListResult struct {
	Stats   CreditStats      `json:"stats"`
	Credits []CreditResponse `json:"creditos"`
}

// ToCreditResponse converts a domain Credit to its response DTO.
// saleTotal is the total of the financed sale.
func ToCreditResponse(c *credit.Credit, saleTotal decimal.Decimal, summary credit.Summary) CreditResponse {
	installments := make([]InstallmentResponse, len(c.Installments))
	for i := range c.Installments {
		installments[i] = ToInstallmentResponse(&c.Installments[i])
	}

	var next *InstallmentResponse
	if inst := c.NextInstallment(); inst != nil {
		r := ToInstallmentResponse(inst)
		next = &r
	}

	return CreditResponse{
		ID:               c.ID,
		SaleID:           c.SaleID,
		Cadence:          c.Cadence.String(),
		InstallmentCount: c.InstallmentCount,
		DownPayment:      c.DownPayment,
		InstallmentValue: c.InstallmentValue,
		FinancedBalance:  shared.Sub2(c.OriginalAmount, c.DownPayment),
		OriginalAmount:   c.OriginalAmount,
		TotalPaid:        c.TotalPaid,
		Outstanding:      c.Outstanding,
		SaleTotal:        saleTotal,
		Status:           c.Status.String(),
		HasOverdue:       summary.HasOverdue,
		StartDate:        c.StartDate.Format(DateLayout),
		FirstDueDate:     c.FirstDueDate.Format(DateLayout),
		Installments:     installments,
		NextInstallment:  next,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// ToInstallmentResponse converts a domain Installment to its response DTO
func ToInstallmentResponse(inst *credit.Installment) InstallmentResponse {
	var paidAt *string
	if inst.PaidAt != nil {
		s := inst.PaidAt.Format(DateLayout)
		paidAt = &s
	}
	return InstallmentResponse{
		ID:         inst.ID,
		Sequence:   inst.Sequence,
		DueDate:    inst.DueDate.Format(DateLayout),
		Value:      inst.Value,
		AmountPaid: inst.AmountPaid,
		Balance:    inst.Outstanding(),
		Status:     inst.Status.String(),
		PaidAt:     paidAt,
	}
}

// ToPaymentAllocationResponse converts an allocation to its response DTO
func ToPaymentAllocationResponse(a credit.Allocation, paidOn time.Time) PaymentAllocationResponse {
	touched := a.Touched
	if touched == nil {
		touched = []int{}
	}
	return PaymentAllocationResponse{
		Amount:       a.Amount,
		Applied:      a.Applied,
		Unapplied:    a.Unapplied,
		Installments: touched,
		PaidOn:       paidOn.Format(DateLayout),
	}
}

// parseDate parses an optional wire date; empty input yields nil
func parseDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, shared.NewValidationError("%s must be a date in YYYY-MM-DD format", field)
	}
	t = shared.DateOf(t)
	return &t, nil
}
