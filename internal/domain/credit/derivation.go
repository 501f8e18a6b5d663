package credit

import (
	"time"

	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Summary is the state derived from a credit's ledger
type Summary struct {
	TotalPaid   decimal.Decimal
	Outstanding decimal.Decimal
	HasOverdue  bool
	Status      Status
}

// Derive computes paid and outstanding amounts and the status of a credit.
// Overpaid installments count only up to their value. A cancelled credit
// stays cancelled; its amounts are still recomputed.
func Derive(installments []Installment, downPayment, originalAmount decimal.Decimal, current Status, today time.Time) Summary {
	paid := decimal.Zero
	overdue := false
	for i := range installments {
		inst := &installments[i]
		paid = shared.Add2(paid, decimal.Min(inst.AmountPaid, inst.Value))
		if inst.IsOverdue(today) {
			overdue = true
		}
	}

	totalPaid := shared.Add2(paid, downPayment)
	outstanding := shared.NonNegative(shared.Sub2(originalAmount, totalPaid))

	var status Status
	switch {
	case current == StatusCancelled:
		status = StatusCancelled
	case shared.IsSettled(outstanding):
		status = StatusPaid
	case overdue:
		status = StatusOverdue
	default:
		status = StatusActive
	}

	return Summary{
		TotalPaid:   totalPaid,
		Outstanding: outstanding,
		HasOverdue:  overdue,
		Status:      status,
	}
}

// DeriveInstallmentStatus returns pagada, vencida or pendiente for inst
func DeriveInstallmentStatus(inst *Installment, today time.Time) InstallmentStatus {
	switch {
	case inst.IsPaid():
		return InstallmentPaid
	case inst.IsOverdue(today):
		return InstallmentOverdue
	default:
		return InstallmentPending
	}
}
