package persistence

import (
	"context"

	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMovementRepository implements inventory.MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Create inserts the movements in one batch
func (r *GormMovementRepository) Create(ctx context.Context, movements []inventory.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	rows := make([]*models.InventoryMovementModel, len(movements))
	for i := range movements {
		rows[i] = models.InventoryMovementModelFromDomain(&movements[i])
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	for i := range rows {
		movements[i].ID = rows[i].ID
	}
	return nil
}

// DetachSale clears the sale reference of every movement of the sale
func (r *GormMovementRepository) DetachSale(ctx context.Context, saleID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.InventoryMovementModel{}).
		Where("sale_id = ?", saleID).
		Update("sale_id", nil).Error
}

// FindByProduct lists the movements of a product, oldest first
func (r *GormMovementRepository) FindByProduct(ctx context.Context, productID int64) ([]inventory.Movement, error) {
	var rows []models.InventoryMovementModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	movements := make([]inventory.Movement, len(rows))
	for i := range rows {
		movements[i] = rows[i].ToDomain()
	}
	return movements, nil
}

// Ensure GormMovementRepository implements inventory.MovementRepository
var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
