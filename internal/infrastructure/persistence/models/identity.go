package models

import (
	"github.com/retail/backoffice/internal/domain/identity"
)

// UserModel is the persistence model of the per-tenant users table
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:varchar(200);not null"`
	Email        string `gorm:"type:varchar(255);not null"`
	PasswordHash string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User of tenant
func (m *UserModel) ToDomain(tenant string) *identity.User {
	return &identity.User{
		ID:           m.ID,
		Tenant:       tenant,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
	}
}
