package credit

import (
	"fmt"
	"time"

	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// GenerateSchedule splits balance into count installments due every cadence
// step from firstDue. Installments 1..count-1 carry round2(balance/count);
// the last one absorbs the rounding residue so the schedule sums exactly to
// balance.
func GenerateSchedule(count int, balance decimal.Decimal, cadence Cadence, firstDue time.Time) ([]Installment, error) {
	if count < 1 {
		return nil, shared.NewDomainError(shared.CodeInvalidCreditTerms, "installment count must be at least 1")
	}
	balance = shared.Round2(balance)
	if !balance.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidCreditTerms, "financed balance must be greater than zero")
	}

	nominal := shared.Round2(balance.Div(decimal.NewFromInt(int64(count))))
	anchor := shared.DateOf(firstDue)

	installments := make([]Installment, 0, count)
	assigned := decimal.Zero
	for k := 1; k <= count; k++ {
		value := nominal
		if k == count {
			value = shared.Sub2(balance, assigned)
		}
		if !value.IsPositive() {
			return nil, shared.NewDomainError(shared.CodeInvalidCreditTerms,
				fmt.Sprintf("financed balance %s is too small for %d installments", balance.StringFixed(2), count))
		}
		assigned = shared.Add2(assigned, value)
		installments = append(installments, Installment{
			Sequence:   k,
			DueDate:    cadence.Advance(anchor, k-1),
			Value:      value,
			AmountPaid: decimal.Zero,
			Status:     InstallmentPending,
		})
	}
	return installments, nil
}

// ScheduleTotal sums the nominal values of installments
func ScheduleTotal(installments []Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		total = shared.Add2(total, inst.Value)
	}
	return total
}
