package credit

import (
	"sort"
	"time"

	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Allocation describes where a payment went
type Allocation struct {
	Amount    decimal.Decimal
	Applied   decimal.Decimal
	Unapplied decimal.Decimal
	// Touched holds the sequence numbers that received money, in order
	Touched []int
}

// Allocate distributes amount over installments, oldest debt first, in two
// passes.
//
// Pass 1 walks installments by sequence. An installment the remaining money
// cannot complete receives all of it and the pass stops there. Otherwise the
// installment is paid in full and the walk continues.
//
// Pass 2 only runs when more than one cent is left. It pays every
// installment the remainder covers and places a final partial payment on the
// first one it cannot cover.
//
// Money that finds no open installment is reported as Unapplied and never
// recorded. installments is sorted by sequence and modified in place.
func Allocate(installments []Installment, amount decimal.Decimal, paidOn time.Time) (Allocation, error) {
	if len(installments) == 0 {
		return Allocation{}, shared.ErrNoInstallments
	}
	amount = shared.Round2(amount)
	if !amount.IsPositive() {
		return Allocation{}, shared.NewValidationError("payment amount must be greater than zero")
	}

	sort.SliceStable(installments, func(i, j int) bool {
		return installments[i].Sequence < installments[j].Sequence
	})

	result := Allocation{Amount: amount}
	remaining := amount

	// pass 1
	for i := range installments {
		if !remaining.IsPositive() {
			break
		}
		inst := &installments[i]
		if inst.IsPaid() {
			continue
		}
		if remaining.Add(inst.AmountPaid).LessThan(inst.Value.Sub(shared.MoneyTolerance)) {
			inst.addPayment(remaining, paidOn)
			result.Touched = append(result.Touched, inst.Sequence)
			remaining = decimal.Zero
			break
		}
		applied := decimal.Min(remaining, inst.Outstanding())
		inst.addPayment(applied, paidOn)
		result.Touched = append(result.Touched, inst.Sequence)
		remaining = shared.Sub2(remaining, applied)
	}

	// pass 2
	if remaining.GreaterThan(shared.MoneyTolerance) {
		for i := range installments {
			inst := &installments[i]
			outstanding := inst.Outstanding()
			if !outstanding.IsPositive() {
				continue
			}
			if remaining.GreaterThanOrEqual(outstanding) {
				inst.addPayment(outstanding, paidOn)
				result.Touched = append(result.Touched, inst.Sequence)
				remaining = shared.Sub2(remaining, outstanding)
				continue
			}
			inst.addPayment(remaining, paidOn)
			result.Touched = append(result.Touched, inst.Sequence)
			remaining = decimal.Zero
			break
		}
	}

	result.Unapplied = shared.NonNegative(remaining)
	result.Applied = shared.Sub2(amount, result.Unapplied)
	return result, nil
}
