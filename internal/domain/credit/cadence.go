package credit

import (
	"time"

	"github.com/retail/backoffice/internal/domain/shared"
)

// Cadence is the repayment frequency of a credit. Unknown values are kept
// and fall back to a 30-day step.
type Cadence string

const (
	CadenceDaily    Cadence = "diario"
	CadenceWeekly   Cadence = "semanal"
	CadenceBiweekly Cadence = "quincenal"
	CadenceMonthly  Cadence = "mensual"
)

// DefaultStepDays is the step used for unrecognised cadences
const DefaultStepDays = 30

// KnownCadences lists the predefined cadences
func KnownCadences() []Cadence {
	return []Cadence{CadenceDaily, CadenceWeekly, CadenceBiweekly, CadenceMonthly}
}

// IsKnown reports whether the cadence has its own step rule
func (c Cadence) IsKnown() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceBiweekly, CadenceMonthly:
		return true
	}
	return false
}

// String returns the string representation of Cadence
func (c Cadence) String() string {
	return string(c)
}

// Advance moves date forward by steps cadence periods.
// Monthly steps are added as a month offset from date, so a schedule
// anchored on the 15th stays on the 15th; Go normalises overflowing days
// (Jan 31 + 1 month = Mar 3 in non-leap years).
func (c Cadence) Advance(date time.Time, steps int) time.Time {
	switch c {
	case CadenceDaily:
		return date.AddDate(0, 0, steps)
	case CadenceWeekly:
		return date.AddDate(0, 0, 7*steps)
	case CadenceBiweekly:
		return date.AddDate(0, 0, 15*steps)
	case CadenceMonthly:
		return date.AddDate(0, steps, 0)
	default:
		return date.AddDate(0, 0, DefaultStepDays*steps)
	}
}

// ParseCadence normalises raw input. Blank input is rejected; anything else
// is accepted.
func ParseCadence(raw string) (Cadence, error) {
	norm := shared.NormalizeToken(raw)
	if norm == "" {
		return "", shared.NewValidationError("credit cadence is required")
	}
	return Cadence(norm), nil
}
