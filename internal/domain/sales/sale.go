package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleLine represents a line item in a sale. Lines are immutable once stored.
type SaleLine struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // round2(Quantity * UnitPrice)
	Serial    string          // IMEI or serial number, optional
}

// NewSaleLine creates a validated sale line
func NewSaleLine(productID int64, quantity int, unitPrice decimal.Decimal, serial string) (SaleLine, error) {
	if productID <= 0 {
		return SaleLine{}, shared.NewValidationError("product id must be positive")
	}
	if quantity <= 0 {
		return SaleLine{}, shared.NewValidationError("quantity for product %d must be positive", productID)
	}
	if unitPrice.IsNegative() {
		return SaleLine{}, shared.NewValidationError("unit price for product %d cannot be negative", productID)
	}
	price := shared.Round2(unitPrice)
	return SaleLine{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: price,
		Subtotal:  shared.Round2(price.Mul(decimal.NewFromInt(int64(quantity)))),
		Serial:    strings.TrimSpace(serial),
	}, nil
}

// Sale is the aggregate root for a point-of-sale transaction
type Sale struct {
	shared.BaseEntity
	CustomerID    int64
	SaleType      SaleType
	PaymentMethod PaymentMethod
	Status        SaleStatus
	Rating        *Rating
	Total         decimal.Decimal
	Discount      decimal.Decimal
	Notes         string
	SoldAt        time.Time
	Lines         []SaleLine
}

// NewSale creates a pending sale. The total is the sum of line subtotals
// minus the discount, rounded to two decimals.
func NewSale(customerID int64, saleType SaleType, method PaymentMethod, discount decimal.Decimal, lines []SaleLine, now time.Time) (*Sale, error) {
	if customerID <= 0 {
		return nil, shared.NewValidationError("customer id must be positive")
	}
	if !saleType.IsValid() {
		return nil, shared.NewValidationError("unknown sale type %q", saleType)
	}
	if strings.TrimSpace(method.String()) == "" {
		return nil, shared.NewValidationError("payment method is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("a sale needs at least one line")
	}
	if discount.IsNegative() {
		return nil, shared.NewValidationError("discount cannot be negative")
	}

	gross := decimal.Zero
	for _, l := range lines {
		gross = shared.Add2(gross, l.Subtotal)
	}
	discount = shared.Round2(discount)
	total := shared.Sub2(gross, discount)
	if total.IsNegative() {
		return nil, shared.NewValidationError("discount %s exceeds sale amount %s", discount.StringFixed(2), gross.StringFixed(2))
	}

	return &Sale{
		BaseEntity:    shared.NewBaseEntity(now),
		CustomerID:    customerID,
		SaleType:      saleType,
		PaymentMethod: method,
		Status:        StatusPending,
		Total:         total,
		Discount:      discount,
		SoldAt:        now,
		Lines:         append([]SaleLine(nil), lines...),
	}, nil
}

// IsFinanced reports whether the sale carries a credit
func (s *Sale) IsFinanced() bool {
	return s.SaleType == SaleTypeCredit
}

// ChangeStatus moves the sale to target
func (s *Sale) ChangeStatus(target SaleStatus, now time.Time) error {
	if !target.IsValid() {
		return shared.NewValidationError("unknown sale status %q", target)
	}
	if !s.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeTerminalState,
			fmt.Sprintf("sale %d is %s and cannot change to %s", s.ID, s.Status, target))
	}
	s.Status = target
	s.Touch(now)
	return nil
}

// MarkReturned transitions the sale to devuelta if it is not already there.
// It reports whether a transition happened.
func (s *Sale) MarkReturned(now time.Time) bool {
	if s.Status == StatusReturned {
		return false
	}
	s.Status = StatusReturned
	s.Touch(now)
	return true
}

// SetPaymentMethod replaces the payment method
func (s *Sale) SetPaymentMethod(method PaymentMethod, now time.Time) {
	s.PaymentMethod = method
	s.Touch(now)
}

// SetRating records the rating
func (s *Sale) SetRating(r Rating, now time.Time) {
	s.Rating = &r
	s.Touch(now)
}

// AssignLineIDs attaches the persisted sale ID to every line
func (s *Sale) AssignLineIDs() {
	for i := range s.Lines {
		s.Lines[i].SaleID = s.ID
	}
}
