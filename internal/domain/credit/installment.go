package credit

import (
	"time"

	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Installment is one scheduled repayment of a credit
type Installment struct {
	ID         int64
	CreditID   int64
	Sequence   int
	DueDate    time.Time
	Value      decimal.Decimal
	AmountPaid decimal.Decimal
	Status     InstallmentStatus
	PaidAt     *time.Time
}

// Outstanding returns the unpaid part of the installment, never negative
func (i *Installment) Outstanding() decimal.Decimal {
	return shared.NonNegative(shared.Sub2(i.Value, i.AmountPaid))
}

// IsPaid reports whether the unpaid part is within one cent
func (i *Installment) IsPaid() bool {
	return shared.IsSettled(i.Value.Sub(i.AmountPaid))
}

// IsOverdue reports whether the installment is unpaid and its due date is
// strictly before today. Only calendar dates are compared.
func (i *Installment) IsOverdue(today time.Time) bool {
	if i.IsPaid() {
		return false
	}
	return shared.DateOf(i.DueDate).Before(shared.DateOf(today))
}

// addPayment adds amount to the paid total and refreshes the status
func (i *Installment) addPayment(amount decimal.Decimal, on time.Time) {
	i.AmountPaid = shared.Add2(i.AmountPaid, amount)
	if i.IsPaid() {
		d := shared.DateOf(on)
		i.Status = InstallmentPaid
		i.PaidAt = &d
		return
	}
	i.Status = InstallmentPending
}
