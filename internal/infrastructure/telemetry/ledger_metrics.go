package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics component is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

const (
	paymentResultApplied    = "applied"
	paymentResultOverpaid   = "overpaid"
	ledgerMeterInstrumentNS = "backoffice_ledger_"
)

// LedgerMetrics records sale and credit business events. It satisfies the
// application ledger Metrics sink.
type LedgerMetrics struct {
	salesCreated     *Counter
	salesReturned    *Counter
	paymentsRecorded *Counter
	saleAmount       *Histogram
	paymentAmount    *Histogram
	unappliedAmount  metric.Float64Counter
}

// NewLedgerMetrics creates the ledger instruments on the given meter.
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	salesCreated, err := NewCounter(meter, ledgerMeterInstrumentNS+"sales_created_total",
		"Total number of sales registered", "{sale}")
	if err != nil {
		return nil, err
	}
	salesReturned, err := NewCounter(meter, ledgerMeterInstrumentNS+"sales_returned_total",
		"Total number of sales deleted as returned", "{sale}")
	if err != nil {
		return nil, err
	}
	paymentsRecorded, err := NewCounter(meter, ledgerMeterInstrumentNS+"payments_recorded_total",
		"Total number of credit payments recorded", "{payment}")
	if err != nil {
		return nil, err
	}
	saleAmount, err := NewHistogram(meter, HistogramOpts{
		Name:        ledgerMeterInstrumentNS + "sale_amount",
		Description: "Distribution of sale totals",
		Unit:        "{currency}",
		Boundaries:  AmountBuckets,
	})
	if err != nil {
		return nil, err
	}
	paymentAmount, err := NewHistogram(meter, HistogramOpts{
		Name:        ledgerMeterInstrumentNS + "payment_amount",
		Description: "Distribution of amounts applied to installments",
		Unit:        "{currency}",
		Boundaries:  AmountBuckets,
	})
	if err != nil {
		return nil, err
	}
	unapplied, err := meter.Float64Counter(ledgerMeterInstrumentNS+"payment_unapplied_total",
		metric.WithDescription("Payment amount left over after every installment was settled"),
		metric.WithUnit("{currency}"),
	)
	if err != nil {
		return nil, err
	}

	return &LedgerMetrics{
		salesCreated:     salesCreated,
		salesReturned:    salesReturned,
		paymentsRecorded: paymentsRecorded,
		saleAmount:       saleAmount,
		paymentAmount:    paymentAmount,
		unappliedAmount:  unapplied,
	}, nil
}

// SaleCreated counts a committed sale and records its total.
func (m *LedgerMetrics) SaleCreated(ctx context.Context, tenant, saleType string, total decimal.Decimal) {
	attrs := []attribute.KeyValue{AttrTenantID.String(tenant), AttrSaleType.String(saleType)}
	m.salesCreated.Inc(ctx, attrs...)
	m.saleAmount.Record(ctx, total.InexactFloat64(), attrs...)
}

// SaleReturned counts a sale removed as returned.
func (m *LedgerMetrics) SaleReturned(ctx context.Context, tenant string) {
	m.salesReturned.Inc(ctx, AttrTenantID.String(tenant))
}

// PaymentRecorded counts a committed payment, split by whether part of it
// could not be applied to any installment.
func (m *LedgerMetrics) PaymentRecorded(ctx context.Context, tenant string, applied, unapplied decimal.Decimal) {
	result := paymentResultApplied
	if unapplied.IsPositive() {
		result = paymentResultOverpaid
	}
	m.paymentsRecorded.Inc(ctx, AttrTenantID.String(tenant), AttrPaymentResult.String(result))
	m.paymentAmount.Record(ctx, applied.InexactFloat64(), AttrTenantID.String(tenant))
	if unapplied.IsPositive() {
		m.unappliedAmount.Add(ctx, unapplied.InexactFloat64(), metric.WithAttributes(AttrTenantID.String(tenant)))
	}
}
