// Package tenant runs database work inside a tenant schema.
//
// Each tenant owns a PostgreSQL schema with the same tables. A transaction
// pins one pooled connection and points its search_path at the tenant schema
// with SET LOCAL, so the setting ends with the transaction and never leaks to
// the next borrower of the connection.
//
// Usage:
//
//	provider := tenant.NewProvider(gormDB)
//	err := provider.Transaction(ctx, "tenant_demo", func(tx *gorm.DB) error {
//		return tx.Find(&sales).Error // reads tenant_demo.sales
//	})
package tenant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"gorm.io/gorm"
)

// Provider opens tenant-scoped transactions
type Provider struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// Option configures a Provider
type Option func(*Provider)

// WithLockTimeout bounds how long a statement waits for a row lock.
// Zero leaves the server default.
func WithLockTimeout(d time.Duration) Option {
	return func(p *Provider) {
		p.lockTimeout = d
	}
}

// NewProvider creates a new tenant provider
func NewProvider(db *gorm.DB, opts ...Option) *Provider {
	p := &Provider{db: db}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Transaction validates tenant, begins a transaction with search_path set to
// the tenant schema and runs fn in it. The transaction commits when fn
// returns nil and rolls back otherwise.
func (p *Provider) Transaction(ctx context.Context, tenant string, fn func(tx *gorm.DB) error) error {
	if err := shared.ValidateTenant(tenant); err != nil {
		return err
	}
	ctx, _ = logger.WithTenant(ctx, logger.FromContext(ctx), tenant)

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(SearchPathStatement(tenant)).Error; err != nil {
			return fmt.Errorf("set search_path: %w", err)
		}
		if p.lockTimeout > 0 {
			if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = %d", p.lockTimeout.Milliseconds())).Error; err != nil {
				return fmt.Errorf("set lock_timeout: %w", err)
			}
		}
		return fn(tx)
	})
}

// SearchPathStatement returns the statement that scopes a transaction to schema
func SearchPathStatement(schema string) string {
	return fmt.Sprintf("SET LOCAL search_path TO %s, public", QuoteIdentifier(schema))
}

// QuoteIdentifier quotes name as a PostgreSQL identifier
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
