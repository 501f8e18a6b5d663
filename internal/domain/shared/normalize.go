package shared

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeToken folds case and trims whitespace so enum inputs such as
// "Efectivo" or " NEQUI " compare equal to their canonical value
func NormalizeToken(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// SameToken reports whether two enum tokens are equal after normalisation
func SameToken(a, b string) bool {
	return NormalizeToken(a) == NormalizeToken(b)
}
