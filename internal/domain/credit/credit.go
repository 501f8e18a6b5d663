package credit

import (
	"fmt"
	"time"

	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Terms are the financing conditions chosen at sale time
type Terms struct {
	Cadence          Cadence
	InstallmentCount int
	DownPayment      decimal.Decimal
	// FirstDueDate is the due date of installment #1. When nil it is one
	// cadence step after the start date.
	FirstDueDate *time.Time
}

// Credit is the aggregate root for a financed sale
type Credit struct {
	shared.BaseEntity
	SaleID           int64
	Cadence          Cadence
	InstallmentCount int
	DownPayment      decimal.Decimal
	InstallmentValue decimal.Decimal
	OriginalAmount   decimal.Decimal
	TotalPaid        decimal.Decimal
	Outstanding      decimal.Decimal
	Status           Status
	FirstDueDate     time.Time
	StartDate        time.Time
	Installments     []Installment
}

// NewCredit finances saleTotal under terms. The down payment is counted as
// paid immediately; the rest is split into the installment schedule.
func NewCredit(saleID int64, saleTotal decimal.Decimal, terms Terms, now time.Time) (*Credit, error) {
	if terms.InstallmentCount < 1 {
		return nil, shared.NewDomainError(shared.CodeInvalidCreditTerms, "installment count must be at least 1")
	}
	if shared.NormalizeToken(terms.Cadence.String()) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidCreditTerms, "credit cadence is required")
	}
	down := shared.Round2(terms.DownPayment)
	if down.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidCreditTerms, "down payment cannot be negative")
	}
	total := shared.Round2(saleTotal)
	if down.GreaterThan(total) {
		return nil, shared.NewDomainError(shared.CodeInvalidCreditTerms,
			fmt.Sprintf("down payment %s exceeds sale total %s", down.StringFixed(2), total.StringFixed(2)))
	}
	financed := shared.Sub2(total, down)
	if !financed.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidCreditTerms, "financed balance must be greater than zero")
	}

	start := shared.DateOf(now)
	firstDue := terms.Cadence.Advance(start, 1)
	if terms.FirstDueDate != nil {
		firstDue = shared.DateOf(*terms.FirstDueDate)
	}

	installments, err := GenerateSchedule(terms.InstallmentCount, financed, terms.Cadence, firstDue)
	if err != nil {
		return nil, err
	}

	c := &Credit{
		BaseEntity:       shared.NewBaseEntity(now),
		SaleID:           saleID,
		Cadence:          terms.Cadence,
		InstallmentCount: terms.InstallmentCount,
		DownPayment:      down,
		InstallmentValue: installments[0].Value,
		OriginalAmount:   shared.Add2(down, ScheduleTotal(installments)),
		TotalPaid:        down,
		Outstanding:      financed,
		Status:           StatusActive,
		FirstDueDate:     firstDue,
		StartDate:        start,
		Installments:     installments,
	}
	return c, nil
}

// ApplyPayment allocates amount over the installments and re-derives the
// credit. Cancelled credits accept no payments.
func (c *Credit) ApplyPayment(amount decimal.Decimal, paidOn, today, now time.Time) (Allocation, error) {
	if c.Status == StatusCancelled {
		return Allocation{}, shared.NewDomainError(shared.CodeInvalidCreditTerms,
			fmt.Sprintf("credit %d is cancelled and accepts no payments", c.ID))
	}
	if len(c.Installments) == 0 {
		return Allocation{}, shared.NewDomainError(shared.CodeNoInstallments,
			fmt.Sprintf("credit %d has no installments configured", c.ID))
	}
	allocation, err := Allocate(c.Installments, amount, paidOn)
	if err != nil {
		return Allocation{}, err
	}
	c.Refresh(today)
	c.Touch(now)
	return allocation, nil
}

// Refresh re-derives the aggregates and installment statuses for today
func (c *Credit) Refresh(today time.Time) Summary {
	for i := range c.Installments {
		c.Installments[i].Status = DeriveInstallmentStatus(&c.Installments[i], today)
	}
	summary := Derive(c.Installments, c.DownPayment, c.OriginalAmount, c.Status, today)
	c.TotalPaid = summary.TotalPaid
	c.Outstanding = summary.Outstanding
	c.Status = summary.Status
	return summary
}

// Cancel marks the credit as cancelled. It is the only way a credit reaches
// cancelado, and derivation never reverses it. No ledger operation calls
// Cancel: cancelling a credit is an explicit action taken outside the sale
// and payment flows, which then persists the credit through the repository.
func (c *Credit) Cancel(now time.Time) {
	c.Status = StatusCancelled
	c.Touch(now)
}

// NextInstallment returns the first installment with more than one cent
// outstanding, or nil when everything is paid
func (c *Credit) NextInstallment() *Installment {
	for i := range c.Installments {
		if !c.Installments[i].IsPaid() {
			return &c.Installments[i]
		}
	}
	return nil
}

// AssignInstallmentCreditID links every installment to the persisted credit
func (c *Credit) AssignInstallmentCreditID() {
	for i := range c.Installments {
		c.Installments[i].CreditID = c.ID
	}
}
