package shared

import "github.com/shopspring/decimal"

// MoneyTolerance is the smallest amount treated as a real balance (one cent)
var MoneyTolerance = decimal.New(1, -2)

// Round2 rounds an amount half away from zero to two decimal places
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Add2 adds two amounts and rounds the result to two decimals
func Add2(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Round(2)
}

// Sub2 subtracts b from a and rounds the result to two decimals
func Sub2(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Round(2)
}

// IsSettled reports whether a balance is within one cent of zero or below
func IsSettled(balance decimal.Decimal) bool {
	return balance.LessThanOrEqual(MoneyTolerance)
}

// NonNegative clamps negative amounts to zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
