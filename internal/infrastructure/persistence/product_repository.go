package persistence

import (
	"context"
	"time"

	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements inventory.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDsForUpdate locks the requested products in ascending ID order
func (r *GormProductRepository) FindByIDsForUpdate(ctx context.Context, ids []int64) ([]inventory.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]inventory.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products, nil
}

// UpdateQuantity writes the new finite quantity of a product
func (r *GormProductRepository) UpdateQuantity(ctx context.Context, id int64, quantity int, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"quantity":   quantity,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrProductNotFound
	}
	return nil
}

// Ensure GormProductRepository implements inventory.ProductRepository
var _ inventory.ProductRepository = (*GormProductRepository)(nil)
