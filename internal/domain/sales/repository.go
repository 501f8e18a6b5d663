package sales

import (
	"context"

	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale persistence.
// Implementations are bound to one tenant schema.
type SaleRepository interface {
	// FindByID finds a sale with its lines
	FindByID(ctx context.Context, id int64) (*Sale, error)

	// FindByIDForUpdate finds a sale with its lines and holds a row lock on the sale
	FindByIDForUpdate(ctx context.Context, id int64) (*Sale, error)

	// FindAll lists sales with their lines, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, int64, error)

	// TotalsByIDs returns sale totals keyed by sale ID
	TotalsByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)

	// Create inserts the sale header and assigns its ID
	Create(ctx context.Context, sale *Sale) error

	// CreateLines inserts the sale lines and assigns their IDs
	CreateLines(ctx context.Context, sale *Sale) error

	// Update persists status, payment method and rating
	Update(ctx context.Context, sale *Sale) error

	// Delete removes the sale lines and the sale
	Delete(ctx context.Context, id int64) error
}

// CustomerRepository exposes the customer lookups the ledger needs
type CustomerRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
