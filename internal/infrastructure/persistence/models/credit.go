package models

import (
	"time"

	"github.com/retail/backoffice/internal/domain/credit"
	"github.com/shopspring/decimal"
)

// CreditModel is the persistence model for the Credit aggregate root
type CreditModel struct {
	BaseModel
	SaleID           int64                    `gorm:"not null;uniqueIndex"`
	Cadence          string                   `gorm:"type:varchar(30);not null"`
	InstallmentCount int                      `gorm:"not null"`
	DownPayment      decimal.Decimal          `gorm:"type:numeric(14,2);not null;default:0"`
	InstallmentValue decimal.Decimal          `gorm:"type:numeric(14,2);not null"`
	OriginalAmount   decimal.Decimal          `gorm:"type:numeric(14,2);not null"`
	TotalPaid        decimal.Decimal          `gorm:"type:numeric(14,2);not null;default:0"`
	Outstanding      decimal.Decimal          `gorm:"type:numeric(14,2);not null"`
	Status           string                   `gorm:"type:varchar(20);not null"`
	FirstDueDate     time.Time                `gorm:"type:date;not null"`
	StartDate        time.Time                `gorm:"type:date;not null"`
	Installments     []CreditInstallmentModel `gorm:"foreignKey:CreditID;references:ID"`
}

// TableName returns the table name for GORM
func (CreditModel) TableName() string {
	return "credits"
}

// ToDomain converts the persistence model to a domain Credit
func (m *CreditModel) ToDomain() *credit.Credit {
	c := &credit.Credit{
		BaseEntity:       m.BaseModel.ToDomain(),
		SaleID:           m.SaleID,
		Cadence:          credit.Cadence(m.Cadence),
		InstallmentCount: m.InstallmentCount,
		DownPayment:      m.DownPayment,
		InstallmentValue: m.InstallmentValue,
		OriginalAmount:   m.OriginalAmount,
		TotalPaid:        m.TotalPaid,
		Outstanding:      m.Outstanding,
		Status:           credit.Status(m.Status),
		FirstDueDate:     m.FirstDueDate,
		StartDate:        m.StartDate,
		Installments:     make([]credit.Installment, len(m.Installments)),
	}
	for i := range m.Installments {
		c.Installments[i] = m.Installments[i].ToDomain()
	}
	return c
}

// CreditModelFromDomain creates the header model of a credit
func CreditModelFromDomain(c *credit.Credit) *CreditModel {
	m := &CreditModel{
		SaleID:           c.SaleID,
		Cadence:          c.Cadence.String(),
		InstallmentCount: c.InstallmentCount,
		DownPayment:      c.DownPayment,
		InstallmentValue: c.InstallmentValue,
		OriginalAmount:   c.OriginalAmount,
		TotalPaid:        c.TotalPaid,
		Outstanding:      c.Outstanding,
		Status:           c.Status.String(),
		FirstDueDate:     c.FirstDueDate,
		StartDate:        c.StartDate,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// CreditInstallmentModel is the persistence model for credit.Installment
type CreditInstallmentModel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	CreditID   int64           `gorm:"not null;uniqueIndex:idx_credit_installment_seq,priority:1"`
	Sequence   int             `gorm:"not null;uniqueIndex:idx_credit_installment_seq,priority:2"`
	DueDate    time.Time       `gorm:"type:date;not null"`
	Value      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AmountPaid decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status     string          `gorm:"type:varchar(20);not null"`
	PaidAt     *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (CreditInstallmentModel) TableName() string {
	return "credit_installments"
}

// ToDomain converts the persistence model to a domain Installment
func (m *CreditInstallmentModel) ToDomain() credit.Installment {
	return credit.Installment{
		ID:         m.ID,
		CreditID:   m.CreditID,
		Sequence:   m.Sequence,
		DueDate:    m.DueDate,
		Value:      m.Value,
		AmountPaid: m.AmountPaid,
		Status:     credit.InstallmentStatus(m.Status),
		PaidAt:     m.PaidAt,
	}
}

// CreditInstallmentModelFromDomain creates a persistence model from a domain Installment
func CreditInstallmentModelFromDomain(i *credit.Installment) CreditInstallmentModel {
	return CreditInstallmentModel{
		ID:         i.ID,
		CreditID:   i.CreditID,
		Sequence:   i.Sequence,
		DueDate:    i.DueDate,
		Value:      i.Value,
		AmountPaid: i.AmountPaid,
		Status:     i.Status.String(),
		PaidAt:     i.PaidAt,
	}
}
