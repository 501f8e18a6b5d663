package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Metrics receives ledger business events after their transaction commits
type Metrics interface {
	SaleCreated(ctx context.Context, tenant, saleType string, total decimal.Decimal)
	SaleReturned(ctx context.Context, tenant string)
	PaymentRecorded(ctx context.Context, tenant string, applied, unapplied decimal.Decimal)
}

type noopMetrics struct{}

func (noopMetrics) SaleCreated(context.Context, string, string, decimal.Decimal) {}

func (noopMetrics) SaleReturned(context.Context, string) {}

func (noopMetrics) PaymentRecorded(context.Context, string, decimal.Decimal, decimal.Decimal) {}
