package persistence

import (
	"context"

	"github.com/retail/backoffice/internal/application/ledger"
	"github.com/retail/backoffice/internal/domain/credit"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/sales"
	"github.com/retail/backoffice/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormTransactionScope implements ledger.TransactionScope on tenant-scoped GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	provider *tenant.Provider
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(provider *tenant.Provider) *GormTransactionScope {
	return &GormTransactionScope{provider: provider}
}

// Execute runs fn within one transaction bound to the tenant schema.
// If fn returns an error, the transaction is rolled back.
// Storage errors surface as domain errors.
func (s *GormTransactionScope) Execute(ctx context.Context, tenantSchema string, fn func(repos ledger.TransactionalRepositories) error) error {
	err := s.provider.Transaction(ctx, tenantSchema, func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	return TranslateError("ledger transaction", err)
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// CustomerRepo returns the customer repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CustomerRepo() sales.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() inventory.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// MovementRepo returns the inventory movement repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// CreditRepo returns the credit repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CreditRepo() credit.Repository {
	return NewGormCreditRepository(r.tx)
}

// Ensure GormTransactionScope implements ledger.TransactionScope
var _ ledger.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements ledger.TransactionalRepositories
var _ ledger.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
