package ledger

import (
	"context"
	"time"

	"github.com/retail/backoffice/internal/domain/credit"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/sales"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id int64) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDForUpdate(ctx context.Context, id int64) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]sales.Sale), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleRepository) TotalsByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]decimal.Decimal), args.Error(1)
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) CreateLines(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Update(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of sales.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of inventory.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDsForUpdate(ctx context.Context, ids []int64) ([]inventory.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateQuantity(ctx context.Context, id int64, quantity int, now time.Time) error {
	args := m.Called(ctx, id, quantity, now)
	return args.Error(0)
}

// MockMovementRepository is a mock implementation of inventory.MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Create(ctx context.Context, movements []inventory.Movement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockMovementRepository) DetachSale(ctx context.Context, saleID int64) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}

// MockCreditRepository is a mock implementation of credit.Repository
type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) Create(ctx context.Context, c *credit.Credit) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCreditRepository) FindByIDForUpdate(ctx context.Context, id int64) (*credit.Credit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Credit), args.Error(1)
}

func (m *MockCreditRepository) FindBySaleID(ctx context.Context, saleID int64) (*credit.Credit, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Credit), args.Error(1)
}

func (m *MockCreditRepository) FindAll(ctx context.Context) ([]credit.Credit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]credit.Credit), args.Error(1)
}

func (m *MockCreditRepository) SaveLedger(ctx context.Context, c *credit.Credit) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCreditRepository) DeleteBySaleID(ctx context.Context, saleID int64) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}

// MockMetrics is a mock implementation of Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) SaleCreated(ctx context.Context, tenant, saleType string, total decimal.Decimal) {
	m.Called(ctx, tenant, saleType, total)
}

func (m *MockMetrics) SaleReturned(ctx context.Context, tenant string) {
	m.Called(ctx, tenant)
}

func (m *MockMetrics) PaymentRecorded(ctx context.Context, tenant string, applied, unapplied decimal.Decimal) {
	m.Called(ctx, tenant, applied, unapplied)
}

// ledgerMocks bundles the repositories behind a NoOpTransactionScope
type ledgerMocks struct {
	sales     *MockSaleRepository
	customers *MockCustomerRepository
	products  *MockProductRepository
	movements *MockMovementRepository
	credits   *MockCreditRepository
	scope     *NoOpTransactionScope
}

func newLedgerMocks() *ledgerMocks {
	m := &ledgerMocks{
		sales:     new(MockSaleRepository),
		customers: new(MockCustomerRepository),
		products:  new(MockProductRepository),
		movements: new(MockMovementRepository),
		credits:   new(MockCreditRepository),
	}
	m.scope = NewNoOpTransactionScope(m.sales, m.customers, m.products, m.movements, m.credits)
	return m
}

func intPtr(v int) *int {
	return &v
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
