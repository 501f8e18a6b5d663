package persistence

import (
	"context"
	"errors"

	"github.com/retail/backoffice/internal/domain/identity"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"github.com/retail/backoffice/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

const tenantSchemasQuery = `SELECT table_schema FROM information_schema.tables
WHERE table_name = 'users' AND table_schema LIKE 'tenant\_%'
ORDER BY table_schema`

// GormUserDirectory implements identity.Directory over the tenant schemas
type GormUserDirectory struct {
	db       *gorm.DB
	provider *tenant.Provider
}

// NewGormUserDirectory creates a new GormUserDirectory
func NewGormUserDirectory(db *gorm.DB, provider *tenant.Provider) *GormUserDirectory {
	return &GormUserDirectory{db: db, provider: provider}
}

// TenantSchemas lists the tenant schemas holding a users table
func (d *GormUserDirectory) TenantSchemas(ctx context.Context) ([]string, error) {
	var found []string
	if err := d.db.WithContext(ctx).Raw(tenantSchemasQuery).Scan(&found).Error; err != nil {
		return nil, err
	}
	schemas := make([]string, 0, len(found))
	for _, s := range found {
		if shared.ValidTenantSchema(s) {
			schemas = append(schemas, s)
		}
	}
	return schemas, nil
}

// FindByEmail finds a user of tenant by email, ignoring case
func (d *GormUserDirectory) FindByEmail(ctx context.Context, tenantSchema, email string) (*identity.User, error) {
	var model models.UserModel
	err := d.provider.Transaction(ctx, tenantSchema, func(tx *gorm.DB) error {
		return tx.Where("LOWER(email) = ?", identity.NormalizeEmail(email)).
			Order("id ASC").
			First(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("user", email)
		}
		return nil, err
	}
	return model.ToDomain(tenantSchema), nil
}

// Ensure GormUserDirectory implements identity.Directory
var _ identity.Directory = (*GormUserDirectory)(nil)
