package models

import (
	"time"

	"github.com/retail/backoffice/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root
type SaleModel struct {
	BaseModel
	CustomerID    int64           `gorm:"not null;index"`
	SaleType      string          `gorm:"type:varchar(20);not null"`
	PaymentMethod string          `gorm:"type:varchar(50);not null"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	Rating        *string         `gorm:"type:varchar(20)"`
	Total         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Discount      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Notes         string          `gorm:"type:text"`
	SoldAt        time.Time       `gorm:"not null;index"`
	Lines         []SaleLineModel `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *sales.Sale {
	sale := &sales.Sale{
		BaseEntity:    m.BaseModel.ToDomain(),
		CustomerID:    m.CustomerID,
		SaleType:      sales.SaleType(m.SaleType),
		PaymentMethod: sales.PaymentMethod(m.PaymentMethod),
		Status:        sales.SaleStatus(m.Status),
		Total:         m.Total,
		Discount:      m.Discount,
		Notes:         m.Notes,
		SoldAt:        m.SoldAt,
		Lines:         make([]sales.SaleLine, len(m.Lines)),
	}
	if m.Rating != nil {
		r := sales.Rating(*m.Rating)
		sale.Rating = &r
	}
	for i := range m.Lines {
		sale.Lines[i] = m.Lines[i].ToDomain()
	}
	return sale
}

// SaleModelFromDomain creates the header model of a sale. Lines are
// written separately once the sale has an ID.
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{
		CustomerID:    s.CustomerID,
		SaleType:      s.SaleType.String(),
		PaymentMethod: s.PaymentMethod.String(),
		Status:        s.Status.String(),
		Total:         s.Total,
		Discount:      s.Discount,
		Notes:         s.Notes,
		SoldAt:        s.SoldAt,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	if s.Rating != nil {
		r := s.Rating.String()
		m.Rating = &r
	}
	return m
}

// SaleLineModel is the persistence model for sales.SaleLine
type SaleLineModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	SaleID    int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Serial    *string         `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (SaleLineModel) TableName() string {
	return "sale_lines"
}

// ToDomain converts the persistence model to a domain SaleLine
func (m *SaleLineModel) ToDomain() sales.SaleLine {
	line := sales.SaleLine{
		ID:        m.ID,
		SaleID:    m.SaleID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Subtotal:  m.Subtotal,
	}
	if m.Serial != nil {
		line.Serial = *m.Serial
	}
	return line
}

// SaleLineModelFromDomain creates a persistence model from a domain SaleLine
func SaleLineModelFromDomain(l *sales.SaleLine) SaleLineModel {
	m := SaleLineModel{
		ID:        l.ID,
		SaleID:    l.SaleID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Subtotal:  l.Subtotal,
	}
	if l.Serial != "" {
		serial := l.Serial
		m.Serial = &serial
	}
	return m
}
