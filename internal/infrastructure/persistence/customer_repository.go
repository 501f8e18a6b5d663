package persistence

import (
	"context"

	"github.com/retail/backoffice/internal/domain/sales"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements sales.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Exists reports whether a customer with id exists
func (r *GormCustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormCustomerRepository implements sales.CustomerRepository
var _ sales.CustomerRepository = (*GormCustomerRepository)(nil)
