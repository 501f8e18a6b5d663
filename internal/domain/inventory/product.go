package inventory

import (
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. A nil Quantity means the product has no
// stock limit (services, made-to-order goods).
type Product struct {
	shared.BaseEntity
	Name        string
	Quantity    *int
	CostPrice   decimal.Decimal
	CashPrice   decimal.Decimal
	CreditPrice decimal.Decimal
}

// IsUnlimited reports whether the product stock is unbounded
func (p *Product) IsUnlimited() bool {
	return p.Quantity == nil
}

// Available returns the finite quantity on hand, or zero for unlimited products
func (p *Product) Available() int {
	if p.Quantity == nil {
		return 0
	}
	return *p.Quantity
}
