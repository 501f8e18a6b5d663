package ledger

import (
	"context"

	"github.com/retail/backoffice/internal/domain/credit"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/sales"
)

// TransactionScope runs ledger work inside one tenant-scoped database transaction.
// If fn returns an error the transaction is rolled back, otherwise it is committed.
// Implementations translate storage failures into InfrastructureError and lock
// contention into ConcurrencyConflict; domain errors pass through untouched.
type TransactionScope interface {
	Execute(ctx context.Context, tenant string, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all ledger repositories within a transaction.
// All repositories returned share the same underlying database transaction and tenant schema.
type TransactionalRepositories interface {
	SaleRepo() sales.SaleRepository
	CustomerRepo() sales.CustomerRepository
	ProductRepo() inventory.ProductRepository
	MovementRepo() inventory.MovementRepository
	CreditRepo() credit.Repository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing the services against in-memory or mock repositories.
type NoOpTransactionScope struct {
	saleRepo     sales.SaleRepository
	customerRepo sales.CustomerRepository
	productRepo  inventory.ProductRepository
	movementRepo inventory.MovementRepository
	creditRepo   credit.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	saleRepo sales.SaleRepository,
	customerRepo sales.CustomerRepository,
	productRepo inventory.ProductRepository,
	movementRepo inventory.MovementRepository,
	creditRepo credit.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		creditRepo:   creditRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, _ string, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository { return s.saleRepo }

// CustomerRepo returns the customer repository.
func (s *NoOpTransactionScope) CustomerRepo() sales.CustomerRepository { return s.customerRepo }

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() inventory.ProductRepository { return s.productRepo }

// MovementRepo returns the inventory movement repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.MovementRepository { return s.movementRepo }

// CreditRepo returns the credit repository.
func (s *NoOpTransactionScope) CreditRepo() credit.Repository { return s.creditRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
