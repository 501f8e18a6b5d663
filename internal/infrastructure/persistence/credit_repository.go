package persistence

import (
	"context"
	"errors"

	"github.com/retail/backoffice/internal/domain/credit"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCreditRepository implements credit.Repository using GORM
type GormCreditRepository struct {
	db *gorm.DB
}

// NewGormCreditRepository creates a new GormCreditRepository
func NewGormCreditRepository(db *gorm.DB) *GormCreditRepository {
	return &GormCreditRepository{db: db}
}

func orderedInstallments(db *gorm.DB) *gorm.DB {
	return db.Order("sequence ASC")
}

// Create inserts the credit header, then its installments
func (r *GormCreditRepository) Create(ctx context.Context, c *credit.Credit) error {
	db := r.db.WithContext(ctx)
	header := models.CreditModelFromDomain(c)
	if err := db.Omit(clause.Associations).Create(header).Error; err != nil {
		return err
	}
	c.ID = header.ID
	c.CreatedAt = header.CreatedAt
	c.UpdatedAt = header.UpdatedAt
	c.AssignInstallmentCreditID()

	if len(c.Installments) == 0 {
		return nil
	}
	rows := make([]models.CreditInstallmentModel, len(c.Installments))
	for i := range c.Installments {
		rows[i] = models.CreditInstallmentModelFromDomain(&c.Installments[i])
	}
	if err := db.Create(&rows).Error; err != nil {
		return err
	}
	for i := range rows {
		c.Installments[i].ID = rows[i].ID
	}
	return nil
}

// FindByIDForUpdate locks the credit row and all of its installments
func (r *GormCreditRepository) FindByIDForUpdate(ctx context.Context, id int64) (*credit.Credit, error) {
	db := r.db.WithContext(ctx)
	var model models.CreditModel
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("credit", id)
		}
		return nil, err
	}
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("credit_id = ?", id).
		Order("sequence ASC").
		Find(&model.Installments).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySaleID loads the credit attached to a sale
func (r *GormCreditRepository) FindBySaleID(ctx context.Context, saleID int64) (*credit.Credit, error) {
	var model models.CreditModel
	err := r.db.WithContext(ctx).
		Preload("Installments", orderedInstallments).
		Where("sale_id = ?", saleID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("credit for sale", saleID)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll loads every credit, newest first
func (r *GormCreditRepository) FindAll(ctx context.Context) ([]credit.Credit, error) {
	var rows []models.CreditModel
	if err := r.db.WithContext(ctx).
		Preload("Installments", orderedInstallments).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	credits := make([]credit.Credit, len(rows))
	for i := range rows {
		credits[i] = *rows[i].ToDomain()
	}
	return credits, nil
}

// SaveLedger writes the credit aggregates and each installment
func (r *GormCreditRepository) SaveLedger(ctx context.Context, c *credit.Credit) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.CreditModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"total_paid":  c.TotalPaid,
			"outstanding": c.Outstanding,
			"status":      c.Status.String(),
			"updated_at":  c.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("credit", c.ID)
	}

	for i := range c.Installments {
		inst := &c.Installments[i]
		if err := db.Model(&models.CreditInstallmentModel{}).
			Where("id = ?", inst.ID).
			Updates(map[string]any{
				"amount_paid": inst.AmountPaid,
				"status":      inst.Status.String(),
				"paid_at":     inst.PaidAt,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteBySaleID removes the credit of a sale together with its installments
func (r *GormCreditRepository) DeleteBySaleID(ctx context.Context, saleID int64) error {
	db := r.db.WithContext(ctx)
	creditIDs := db.Model(&models.CreditModel{}).Select("id").Where("sale_id = ?", saleID)
	if err := db.Where("credit_id IN (?)", creditIDs).Delete(&models.CreditInstallmentModel{}).Error; err != nil {
		return err
	}
	return db.Where("sale_id = ?", saleID).Delete(&models.CreditModel{}).Error
}

// Ensure GormCreditRepository implements credit.Repository
var _ credit.Repository = (*GormCreditRepository)(nil)
