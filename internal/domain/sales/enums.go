package sales

import (
	"github.com/retail/backoffice/internal/domain/shared"
)

// SaleStatus represents the lifecycle status of a sale
type SaleStatus string

const (
	StatusPending   SaleStatus = "pendiente"
	StatusConfirmed SaleStatus = "confirmada"
	StatusShipped   SaleStatus = "enviada"
	StatusDelivered SaleStatus = "entregada"
	StatusCancelled SaleStatus = "cancelada"
	StatusReturned  SaleStatus = "devuelta"
)

// AllSaleStatuses lists sale statuses in display order
func AllSaleStatuses() []SaleStatus {
	return []SaleStatus{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled, StatusReturned}
}

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition away from s is possible
func (s SaleStatus) IsTerminal() bool {
	return s == StatusReturned
}

// CanTransitionTo checks if the status can transition to the target status.
// Non-terminal statuses move freely; devuelta only accepts itself.
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	if !target.IsValid() || !s.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return target == StatusReturned
	}
	return true
}

// ParseSaleStatus converts raw input into a SaleStatus
func ParseSaleStatus(raw string) (SaleStatus, error) {
	for _, s := range AllSaleStatuses() {
		if shared.SameToken(raw, string(s)) {
			return s, nil
		}
	}
	return "", shared.NewValidationError("unknown sale status %q", raw)
}

// SaleType distinguishes cash sales from financed sales
type SaleType string

const (
	SaleTypeCash   SaleType = "contado"
	SaleTypeCredit SaleType = "credito"
)

// AllSaleTypes lists the accepted sale types
func AllSaleTypes() []SaleType {
	return []SaleType{SaleTypeCash, SaleTypeCredit}
}

// IsValid checks if the sale type is known
func (t SaleType) IsValid() bool {
	return t == SaleTypeCash || t == SaleTypeCredit
}

// String returns the string representation of SaleType
func (t SaleType) String() string {
	return string(t)
}

// ParseSaleType converts raw input into a SaleType. Empty input means contado.
func ParseSaleType(raw string) (SaleType, error) {
	if shared.NormalizeToken(raw) == "" {
		return SaleTypeCash, nil
	}
	for _, t := range AllSaleTypes() {
		if shared.SameToken(raw, string(t)) {
			return t, nil
		}
	}
	return "", shared.NewValidationError("unknown sale type %q", raw)
}

// PaymentMethod is how the customer paid. Values outside the known set are
// kept, case-folded, as an "other" method.
type PaymentMethod string

const (
	PaymentCash           PaymentMethod = "efectivo"
	PaymentTransfer       PaymentMethod = "transferencia"
	PaymentCreditCard     PaymentMethod = "tarjeta_credito"
	PaymentDebitCard      PaymentMethod = "tarjeta_debito"
	PaymentDeposit        PaymentMethod = "consignacion"
	PaymentBancolombia    PaymentMethod = "bancolombia"
	PaymentNequi          PaymentMethod = "nequi"
	PaymentDaviplata      PaymentMethod = "daviplata"
	PaymentQRCode         PaymentMethod = "codigo_qr"
	PaymentCashOnDelivery PaymentMethod = "contraentrega"
)

// KnownPaymentMethods lists the predefined payment methods
func KnownPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentCash, PaymentTransfer, PaymentCreditCard, PaymentDebitCard, PaymentDeposit,
		PaymentBancolombia, PaymentNequi, PaymentDaviplata, PaymentQRCode, PaymentCashOnDelivery,
	}
}

// IsOther reports whether the method is a free-form value
func (m PaymentMethod) IsOther() bool {
	for _, k := range KnownPaymentMethods() {
		if m == k {
			return false
		}
	}
	return true
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod maps known methods to their canonical value and keeps
// anything else as an other method. Blank input is rejected.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	norm := shared.NormalizeToken(raw)
	if norm == "" {
		return "", shared.NewValidationError("payment method is required")
	}
	for _, k := range KnownPaymentMethods() {
		if norm == string(k) {
			return k, nil
		}
	}
	return PaymentMethod(norm), nil
}

// Rating is the collection outcome recorded against a customer on a sale
type Rating string

const (
	RatingPending  Rating = "Pendiente"
	RatingPositive Rating = "Positivo"
	RatingNegative Rating = "Negativo"
	RatingTheft    Rating = "Hurto"
)

// AllRatings lists the accepted ratings
func AllRatings() []Rating {
	return []Rating{RatingPending, RatingPositive, RatingNegative, RatingTheft}
}

// IsValid checks if the rating is known
func (r Rating) IsValid() bool {
	switch r {
	case RatingPending, RatingPositive, RatingNegative, RatingTheft:
		return true
	}
	return false
}

// String returns the string representation of Rating
func (r Rating) String() string {
	return string(r)
}

// ParseRating converts raw input into a Rating
func ParseRating(raw string) (Rating, error) {
	for _, r := range AllRatings() {
		if shared.SameToken(raw, string(r)) {
			return r, nil
		}
	}
	return "", shared.NewValidationError("unknown rating %q", raw)
}
