package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/retail/backoffice/internal/domain/sales"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// FindByID finds a sale with its lines
func (r *GormSaleRepository) FindByID(ctx context.Context, id int64) (*sales.Sale, error) {
	var model models.SaleModel
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("sale", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate locks the sale row, then loads its lines
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, id int64) (*sales.Sale, error) {
	var model models.SaleModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("sale", id)
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("sale_id = ?", id).Order("id ASC").Find(&model.Lines).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists sales with their lines. filter.Filters["status"] narrows by status.
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SaleModel{})
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "sold_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir)).Order("id " + orderDir)
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.SaleModel
	if err := query.Preload("Lines", orderedLines).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	result := make([]sales.Sale, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, total, nil
}

// TotalsByIDs returns sale totals keyed by sale ID
func (r *GormSaleRepository) TotalsByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	totals := make(map[int64]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return totals, nil
	}

	var rows []struct {
		ID    int64
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Select("id, total").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		totals[row.ID] = row.Total
	}
	return totals, nil
}

// Create inserts the sale header and assigns its ID
func (r *GormSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	model := models.SaleModelFromDomain(sale)
	model.Lines = nil
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return err
	}
	sale.ID = model.ID
	sale.CreatedAt = model.CreatedAt
	sale.UpdatedAt = model.UpdatedAt
	return nil
}

// CreateLines inserts the sale lines and assigns their IDs
func (r *GormSaleRepository) CreateLines(ctx context.Context, sale *sales.Sale) error {
	if len(sale.Lines) == 0 {
		return nil
	}
	lines := make([]models.SaleLineModel, len(sale.Lines))
	for i := range sale.Lines {
		lines[i] = models.SaleLineModelFromDomain(&sale.Lines[i])
	}
	if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
		return err
	}
	for i := range lines {
		sale.Lines[i].ID = lines[i].ID
	}
	return nil
}

// Update persists status, payment method and rating
func (r *GormSaleRepository) Update(ctx context.Context, sale *sales.Sale) error {
	var rating *string
	if sale.Rating != nil {
		v := sale.Rating.String()
		rating = &v
	}
	result := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("id = ?", sale.ID).
		Updates(map[string]any{
			"status":         sale.Status.String(),
			"payment_method": sale.PaymentMethod.String(),
			"rating":         rating,
			"updated_at":     sale.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("sale", sale.ID)
	}
	return nil
}

// Delete removes the sale lines and the sale
func (r *GormSaleRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("sale_id = ?", id).Delete(&models.SaleLineModel{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&models.SaleModel{}).Error
}

// Ensure GormSaleRepository implements sales.SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
