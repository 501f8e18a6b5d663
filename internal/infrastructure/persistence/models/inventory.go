package models

import (
	"time"

	"github.com/retail/backoffice/internal/domain/inventory"
)

// InventoryMovementModel is the persistence model for inventory.Movement
type InventoryMovementModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ProductID int64     `gorm:"not null;index"`
	SaleID    *int64    `gorm:"index"`
	Quantity  int       `gorm:"not null"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryMovementModel) TableName() string {
	return "inventory_movements"
}

// ToDomain converts the persistence model to a domain Movement
func (m *InventoryMovementModel) ToDomain() inventory.Movement {
	return inventory.Movement{
		ID:        m.ID,
		ProductID: m.ProductID,
		SaleID:    m.SaleID,
		Quantity:  m.Quantity,
		Kind:      inventory.MovementKind(m.Kind),
		CreatedAt: m.CreatedAt,
	}
}

// InventoryMovementModelFromDomain creates a persistence model from a domain Movement
func InventoryMovementModelFromDomain(mv *inventory.Movement) *InventoryMovementModel {
	return &InventoryMovementModel{
		ID:        mv.ID,
		ProductID: mv.ProductID,
		SaleID:    mv.SaleID,
		Quantity:  mv.Quantity,
		Kind:      mv.Kind.String(),
		CreatedAt: mv.CreatedAt,
	}
}
