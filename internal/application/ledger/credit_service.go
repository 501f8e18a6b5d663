package ledger

import (
	"context"

	"github.com/retail/backoffice/internal/domain/credit"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreditService handles payments against credits and the credit portfolio
type CreditService struct {
	scope   TransactionScope
	clock   shared.Clock
	logger  *zap.Logger
	metrics Metrics
}

// NewCreditService creates a new CreditService
func NewCreditService(scope TransactionScope, clock shared.Clock, logger *zap.Logger) *CreditService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreditService{
		scope:   scope,
		clock:   clock,
		logger:  logger,
		metrics: noopMetrics{},
	}
}

// SetMetrics sets the business metrics sink
func (s *CreditService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// RecordPayment allocates a payment over the installments of a credit,
// oldest debt first, and persists the re-derived ledger. The credit and its
// installments stay locked until the transaction ends.
func (s *CreditService) RecordPayment(ctx context.Context, tenant string, creditID int64, req RecordPaymentRequest) (*PaymentResponse, error) {
	amount := shared.Round2(req.Amount)
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("payment amount must be greater than zero")
	}
	today := s.clock.Today()
	paidOn := today
	if date, err := parseDate("fechaPago", req.PaidOn); err != nil {
		return nil, err
	} else if date != nil {
		paidOn = *date
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "credit", "record_payment",
		telemetry.WithAttribute(telemetry.SpanAttrTenant, tenant),
		telemetry.WithAttribute(telemetry.SpanAttrCreditID, creditID),
		telemetry.WithAttribute(telemetry.SpanAttrAmount, amount),
	)
	defer span.End()

	now := s.clock.Now()
	var (
		c          *credit.Credit
		allocation credit.Allocation
		saleTotal  decimal.Decimal
	)
	err := s.scope.Execute(ctx, tenant, func(repos TransactionalRepositories) error {
		var err error
		c, err = repos.CreditRepo().FindByIDForUpdate(ctx, creditID)
		if err != nil {
			return err
		}

		allocation, err = c.ApplyPayment(amount, paidOn, today, now)
		if err != nil {
			return err
		}

		if err := repos.CreditRepo().SaveLedger(ctx, c); err != nil {
			return err
		}

		totals, err := repos.SaleRepo().TotalsByIDs(ctx, []int64{c.SaleID})
		if err != nil {
			return err
		}
		saleTotal = totals[c.SaleID]
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		logFailure(s.logger, "record payment", tenant, err)
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("tenant", tenant),
		zap.Int64("credit_id", c.ID),
		zap.String("amount", allocation.Amount.StringFixed(2)),
		zap.String("applied", allocation.Applied.StringFixed(2)),
		zap.String("unapplied", allocation.Unapplied.StringFixed(2)),
		zap.String("status", c.Status.String()),
	)
	s.metrics.PaymentRecorded(ctx, tenant, allocation.Applied, allocation.Unapplied)

	summary := credit.Derive(c.Installments, c.DownPayment, c.OriginalAmount, c.Status, today)
	return &PaymentResponse{
		CreditResponse: ToCreditResponse(c, saleTotal, summary),
		Payment:        ToPaymentAllocationResponse(allocation, paidOn),
	}, nil
}

// ListCredits returns every credit of the tenant with statuses re-derived
// for today, plus portfolio totals. Derived values are not written back.
func (s *CreditService) ListCredits(ctx context.Context, tenant string) (*CreditListResult, error) {
	var (
		credits []credit.Credit
		totals  map[int64]decimal.Decimal
	)
	err := s.scope.Execute(ctx, tenant, func(repos TransactionalRepositories) error {
		var err error
		credits, err = repos.CreditRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		if len(credits) == 0 {
			return nil
		}
		saleIDs := make([]int64, len(credits))
		for i := range credits {
			saleIDs[i] = credits[i].SaleID
		}
		totals, err = repos.SaleRepo().TotalsByIDs(ctx, saleIDs)
		return err
	})
	if err != nil {
		logFailure(s.logger, "list credits", tenant, err)
		return nil, err
	}

	today := s.clock.Today()
	result := &CreditListResult{
		Stats: CreditStats{
			AmountGranted:   decimal.Zero,
			AmountCollected: decimal.Zero,
			AmountPending:   decimal.Zero,
		},
		Credits: make([]CreditResponse, 0, len(credits)),
	}
	for i := range credits {
		c := &credits[i]
		summary := c.Refresh(today)

		result.Stats.TotalCredits++
		result.Stats.AmountGranted = shared.Add2(result.Stats.AmountGranted, c.OriginalAmount)
		result.Stats.AmountCollected = shared.Add2(result.Stats.AmountCollected, c.TotalPaid)
		result.Stats.AmountPending = shared.Add2(result.Stats.AmountPending, c.Outstanding)
		if summary.HasOverdue {
			result.Stats.OverdueCredits++
		}

		result.Credits = append(result.Credits, ToCreditResponse(c, totals[c.SaleID], summary))
	}
	return result, nil
}
