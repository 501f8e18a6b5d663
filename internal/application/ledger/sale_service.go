package ledger

import (
	"context"
	"time"

	"github.com/retail/backoffice/internal/domain/credit"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/sales"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Options tunes ledger behavior per deployment
type Options struct {
	// RestockOnReturn puts finite stock back when a sale is deleted as returned
	RestockOnReturn bool
}

// SaleService handles the sale lifecycle: create, update, delete/return and reads
type SaleService struct {
	scope   TransactionScope
	clock   shared.Clock
	opts    Options
	logger  *zap.Logger
	metrics Metrics
}

// NewSaleService creates a new SaleService
func NewSaleService(scope TransactionScope, clock shared.Clock, opts Options, logger *zap.Logger) *SaleService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		scope:   scope,
		clock:   clock,
		opts:    opts,
		logger:  logger,
		metrics: noopMetrics{},
	}
}

// SetMetrics sets the business metrics sink
func (s *SaleService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Create registers a sale, reserves its stock and, for credito sales, opens
// the credit with its installment schedule. Everything happens in one
// transaction; any failure leaves no trace.
func (s *SaleService) Create(ctx context.Context, tenant string, req CreateSaleRequest) (*SaleResponse, error) {
	saleType, err := sales.ParseSaleType(req.SaleType)
	if err != nil {
		return nil, err
	}
	method, err := sales.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	lines := make([]sales.SaleLine, 0, len(req.Lines))
	for _, in := range req.Lines {
		line, err := sales.NewSaleLine(in.ProductID, in.Quantity, in.UnitPrice, in.Serial)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	var terms *credit.Terms
	if saleType == sales.SaleTypeCredit {
		terms, err = creditTermsFrom(req.Credit)
		if err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	sale, err := sales.NewSale(req.CustomerID, saleType, method, req.Discount, lines, now)
	if err != nil {
		return nil, err
	}
	sale.Notes = req.Notes

	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "create",
		telemetry.WithAttribute(telemetry.SpanAttrTenant, tenant),
		telemetry.WithAttribute(telemetry.SpanAttrSaleType, saleType.String()),
		telemetry.WithAttribute(telemetry.SpanAttrLineCount, len(lines)),
	)
	defer span.End()

	var opened *credit.Credit
	err = s.scope.Execute(ctx, tenant, func(repos TransactionalRepositories) error {
		exists, err := repos.CustomerRepo().Exists(ctx, sale.CustomerID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NewNotFoundError("customer", sale.CustomerID)
		}

		if err := repos.SaleRepo().Create(ctx, sale); err != nil {
			return err
		}

		updates, err := s.reserveStock(ctx, repos, sale, now)
		if err != nil {
			return err
		}

		sale.AssignLineIDs()
		if err := repos.SaleRepo().CreateLines(ctx, sale); err != nil {
			return err
		}

		if sale.IsFinanced() {
			c, err := credit.NewCredit(sale.ID, sale.Total, *terms, now)
			if err != nil {
				return err
			}
			if err := repos.CreditRepo().Create(ctx, c); err != nil {
				return err
			}
			opened = c
		}

		if len(updates) > 0 {
			movements := inventory.MovementsFor(updates, sale.ID, inventory.MovementSale, now)
			if err := repos.MovementRepo().Create(ctx, movements); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logFailure("create sale", tenant, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrSaleID, sale.ID)

	s.logger.Info("Sale created",
		zap.String("tenant", tenant),
		zap.Int64("sale_id", sale.ID),
		zap.String("sale_type", sale.SaleType.String()),
		zap.String("total", sale.Total.StringFixed(2)),
	)
	s.metrics.SaleCreated(ctx, tenant, sale.SaleType.String(), sale.Total)

	response := ToSaleResponse(sale)
	if opened != nil {
		c := ToCreditResponse(opened, sale.Total, opened.Refresh(s.clock.Today()))
		response.Credit = &c
	}
	return &response, nil
}

// Update changes the status, payment method or rating of a sale.
// A returned sale keeps its status.
func (s *SaleService) Update(ctx context.Context, tenant string, saleID int64, req UpdateSaleRequest) (*SaleResponse, error) {
	if req.Status == nil && req.PaymentMethod == nil && req.Rating == nil {
		return nil, shared.NewValidationError("nothing to update: provide estado, medioPago or calificacion")
	}

	var (
		status sales.SaleStatus
		method sales.PaymentMethod
		rating sales.Rating
		err    error
	)
	if req.Status != nil {
		if status, err = sales.ParseSaleStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.PaymentMethod != nil {
		if method, err = sales.ParsePaymentMethod(*req.PaymentMethod); err != nil {
			return nil, err
		}
	}
	if req.Rating != nil {
		if rating, err = sales.ParseRating(*req.Rating); err != nil {
			return nil, err
		}
	}

	opts := []telemetry.SpanOption{
		telemetry.WithAttribute(telemetry.SpanAttrTenant, tenant),
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID),
	}
	if req.Status != nil {
		opts = append(opts, telemetry.WithAttribute(telemetry.SpanAttrNextStatus, status.String()))
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "update", opts...)
	defer span.End()

	now := s.clock.Now()
	var sale *sales.Sale
	var existing *credit.Credit
	err = s.scope.Execute(ctx, tenant, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}

		if req.Status != nil {
			if err := sale.ChangeStatus(status, now); err != nil {
				return err
			}
		}
		if req.PaymentMethod != nil {
			sale.SetPaymentMethod(method, now)
		}
		if req.Rating != nil {
			sale.SetRating(rating, now)
		}

		if err := repos.SaleRepo().Update(ctx, sale); err != nil {
			return err
		}

		existing, err = s.findCredit(ctx, repos, sale)
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logFailure("update sale", tenant, err)
		return nil, err
	}

	s.logger.Info("Sale updated",
		zap.String("tenant", tenant),
		zap.Int64("sale_id", sale.ID),
		zap.String("status", sale.Status.String()),
	)

	return s.saleResponse(sale, existing), nil
}

// Delete marks a sale as returned and removes it together with its credit.
// Stock movements survive with their sale reference cleared.
func (s *SaleService) Delete(ctx context.Context, tenant string, saleID int64) (*DeleteSaleResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrTenant, tenant),
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID),
	)
	defer span.End()

	now := s.clock.Now()
	result := &DeleteSaleResult{}

	err := s.scope.Execute(ctx, tenant, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}

		if sale.MarkReturned(now) {
			result.WasReturned = true
			if err := repos.SaleRepo().Update(ctx, sale); err != nil {
				return err
			}
		}

		if s.opts.RestockOnReturn {
			if err := s.restock(ctx, repos, sale, now); err != nil {
				return err
			}
		}

		if err := repos.CreditRepo().DeleteBySaleID(ctx, sale.ID); err != nil {
			return err
		}
		if err := repos.MovementRepo().DetachSale(ctx, sale.ID); err != nil {
			return err
		}
		if err := repos.SaleRepo().Delete(ctx, sale.ID); err != nil {
			return err
		}
		result.Deleted = true
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logFailure("delete sale", tenant, err)
		return nil, err
	}

	s.logger.Info("Sale returned and deleted",
		zap.String("tenant", tenant),
		zap.Int64("sale_id", saleID),
		zap.Bool("was_returned", result.WasReturned),
		zap.Bool("restocked", s.opts.RestockOnReturn),
	)
	if result.WasReturned {
		s.metrics.SaleReturned(ctx, tenant)
	}
	return result, nil
}

// GetByID retrieves a sale with its lines and credit
func (s *SaleService) GetByID(ctx context.Context, tenant string, saleID int64) (*SaleResponse, error) {
	var sale *sales.Sale
	var existing *credit.Credit
	err := s.scope.Execute(ctx, tenant, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		existing, err = s.findCredit(ctx, repos, sale)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.saleResponse(sale, existing), nil
}

// List retrieves sales with their lines, newest first
func (s *SaleService) List(ctx context.Context, tenant string, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "sold_at"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.PageSize > 100 {
		domainFilter.PageSize = 100
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		status, err := sales.ParseSaleStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["status"] = status.String()
	}

	var (
		found []sales.Sale
		total int64
	)
	err := s.scope.Execute(ctx, tenant, func(repos TransactionalRepositories) error {
		var err error
		found, total, err = repos.SaleRepo().FindAll(ctx, domainFilter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, len(found))
	for i := range found {
		responses[i] = ToSaleResponse(&found[i])
	}
	return responses, total, nil
}

// reserveStock locks the products of the sale in ascending ID order, checks
// the accumulated demand and writes the remaining stock back
func (s *SaleService) reserveStock(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale, now time.Time) ([]inventory.StockUpdate, error) {
	requests := stockRequests(sale)
	products, err := s.lockProducts(ctx, repos, requests)
	if err != nil {
		return nil, err
	}

	updates, err := inventory.Reserve(requests, products)
	if err != nil {
		return nil, err
	}
	for _, u := range updates {
		if err := repos.ProductRepo().UpdateQuantity(ctx, u.ProductID, u.NewQuantity, now); err != nil {
			return nil, err
		}
	}
	return updates, nil
}

// restock puts the sold units of finite-stock products back and records
// return movements
func (s *SaleService) restock(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale, now time.Time) error {
	requests := stockRequests(sale)
	if len(requests) == 0 {
		return nil
	}
	products, err := s.lockProducts(ctx, repos, requests)
	if err != nil {
		return err
	}

	updates := inventory.Restock(requests, products)
	for _, u := range updates {
		if err := repos.ProductRepo().UpdateQuantity(ctx, u.ProductID, u.NewQuantity, now); err != nil {
			return err
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return repos.MovementRepo().Create(ctx, inventory.MovementsFor(updates, sale.ID, inventory.MovementReturn, now))
}

func (s *SaleService) lockProducts(ctx context.Context, repos TransactionalRepositories, requests []inventory.StockRequest) (map[int64]*inventory.Product, error) {
	locked, err := repos.ProductRepo().FindByIDsForUpdate(ctx, inventory.DistinctProductIDs(requests))
	if err != nil {
		return nil, err
	}
	products := make(map[int64]*inventory.Product, len(locked))
	for i := range locked {
		products[locked[i].ID] = &locked[i]
	}
	return products, nil
}

// findCredit loads the credit of a credito sale; contado sales have none
func (s *SaleService) findCredit(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale) (*credit.Credit, error) {
	if !sale.IsFinanced() {
		return nil, nil
	}
	c, err := repos.CreditRepo().FindBySaleID(ctx, sale.ID)
	if err != nil {
		if shared.IsCode(err, shared.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (s *SaleService) saleResponse(sale *sales.Sale, c *credit.Credit) *SaleResponse {
	response := ToSaleResponse(sale)
	if c != nil {
		cr := ToCreditResponse(c, sale.Total, c.Refresh(s.clock.Today()))
		response.Credit = &cr
	}
	return &response
}

func (s *SaleService) logFailure(op, tenant string, err error) {
	logFailure(s.logger, op, tenant, err)
}

func stockRequests(sale *sales.Sale) []inventory.StockRequest {
	requests := make([]inventory.StockRequest, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		requests = append(requests, inventory.StockRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return requests
}

func creditTermsFrom(in *CreditTermsInput) (*credit.Terms, error) {
	if in == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidCreditTerms, "credit terms are required for credito sales")
	}
	cadence, err := credit.ParseCadence(in.Cadence)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeInvalidCreditTerms, "credit cadence is required", err)
	}
	firstDue, err := parseDate("fechaPrimeraCuota", in.FirstDueDate)
	if err != nil {
		return nil, err
	}
	return &credit.Terms{
		Cadence:          cadence,
		InstallmentCount: in.InstallmentCount,
		DownPayment:      in.DownPayment,
		FirstDueDate:     firstDue,
	}, nil
}

// logFailure logs infrastructure failures at error level with their cause
// and business rejections at info level
func logFailure(logger *zap.Logger, op, tenant string, err error) {
	if shared.IsCode(err, shared.CodeInfrastructure) || shared.IsCode(err, shared.CodeNoInstallments) {
		logger.Error("Ledger operation failed",
			zap.String("operation", op),
			zap.String("tenant", tenant),
			zap.Error(err),
		)
		return
	}
	logger.Info("Ledger operation rejected",
		zap.String("operation", op),
		zap.String("tenant", tenant),
		zap.Error(err),
	)
}
