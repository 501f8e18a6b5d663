package credit

import "context"

// Repository defines the interface for credit persistence.
// Implementations are bound to one tenant schema.
type Repository interface {
	// Create inserts the credit and its installments, assigning IDs
	Create(ctx context.Context, c *Credit) error

	// FindByIDForUpdate loads the credit and its installments ordered by
	// sequence, holding row locks on all of them
	FindByIDForUpdate(ctx context.Context, id int64) (*Credit, error)

	// FindBySaleID loads the credit of a sale, or returns NotFound
	FindBySaleID(ctx context.Context, saleID int64) (*Credit, error)

	// FindAll loads every credit with its installments, newest first
	FindAll(ctx context.Context) ([]Credit, error)

	// SaveLedger persists the credit aggregates and every installment
	SaveLedger(ctx context.Context, c *Credit) error

	// DeleteBySaleID removes the credit of a sale and its installments.
	// It is not an error when the sale has no credit.
	DeleteBySaleID(ctx context.Context, saleID int64) error
}
