package models

import (
	"time"

	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for inventory.Product
type ProductModel struct {
	BaseModel
	Name        string          `gorm:"type:varchar(200);not null"`
	Quantity    *int            `gorm:"type:integer"`
	CostPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CashPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreditPrice decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() inventory.Product {
	p := inventory.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		CostPrice:   m.CostPrice,
		CashPrice:   m.CashPrice,
		CreditPrice: m.CreditPrice,
	}
	if m.Quantity != nil {
		q := *m.Quantity
		p.Quantity = &q
	}
	return p
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *inventory.Product) *ProductModel {
	m := &ProductModel{
		Name:        p.Name,
		Quantity:    p.Quantity,
		CostPrice:   p.CostPrice,
		CashPrice:   p.CashPrice,
		CreditPrice: p.CreditPrice,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// CustomerModel is the persistence model of the customers table. The ledger
// only checks that a customer exists.
type CustomerModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Phone     string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}
