package handler

import (
	"context"

	"github.com/retail/backoffice/internal/application/identity"
	"github.com/retail/backoffice/internal/application/ledger"
	"github.com/retail/backoffice/internal/infrastructure/auth"
	"github.com/stretchr/testify/mock"
)

// MockSaleService implements SaleService for testing
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) Create(ctx context.Context, tenant string, req ledger.CreateSaleRequest) (*ledger.SaleResponse, error) {
	args := m.Called(ctx, tenant, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SaleResponse), args.Error(1)
}

func (m *MockSaleService) Update(ctx context.Context, tenant string, saleID int64, req ledger.UpdateSaleRequest) (*ledger.SaleResponse, error) {
	args := m.Called(ctx, tenant, saleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SaleResponse), args.Error(1)
}

func (m *MockSaleService) Delete(ctx context.Context, tenant string, saleID int64) (*ledger.DeleteSaleResult, error) {
	args := m.Called(ctx, tenant, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.DeleteSaleResult), args.Error(1)
}

func (m *MockSaleService) GetByID(ctx context.Context, tenant string, saleID int64) (*ledger.SaleResponse, error) {
	args := m.Called(ctx, tenant, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SaleResponse), args.Error(1)
}

func (m *MockSaleService) List(ctx context.Context, tenant string, filter ledger.SaleListFilter) ([]ledger.SaleResponse, int64, error) {
	args := m.Called(ctx, tenant, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]ledger.SaleResponse), args.Get(1).(int64), args.Error(2)
}

// MockCreditService implements CreditService for testing
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) RecordPayment(ctx context.Context, tenant string, creditID int64, req ledger.RecordPaymentRequest) (*ledger.PaymentResponse, error) {
	args := m.Called(ctx, tenant, creditID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentResponse), args.Error(1)
}

func (m *MockCreditService) ListCredits(ctx context.Context, tenant string) (*ledger.CreditListResult, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CreditListResult), args.Error(1)
}

// MockAuthService implements AuthService for testing
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LoginResult), args.Error(1)
}

func (m *MockAuthService) Session(claims *auth.Claims) (*identity.SessionResponse, error) {
	args := m.Called(claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.SessionResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) (*identity.LogoutResult, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LogoutResult), args.Error(1)
}
