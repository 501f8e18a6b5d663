package inventory

import (
	"context"
	"time"
)

// ProductRepository defines the stock operations of the ledger
type ProductRepository interface {
	// FindByIDsForUpdate loads the products and holds a row lock on each,
	// acquired in ascending ID order. Missing IDs are simply absent.
	FindByIDsForUpdate(ctx context.Context, ids []int64) ([]Product, error)

	// UpdateQuantity writes the new finite quantity of a product, stamped at now
	UpdateQuantity(ctx context.Context, id int64, quantity int, now time.Time) error
}

// MovementRepository persists stock movements
type MovementRepository interface {
	Create(ctx context.Context, movements []Movement) error

	// DetachSale clears the sale reference of every movement of the sale
	DetachSale(ctx context.Context, saleID int64) error
}
