package identity

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// User is a back-office account stored in a tenant schema
type User struct {
	ID           int64
	Tenant       string
	Name         string
	Email        string
	PasswordHash string
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// Accounts without a hash never authenticate.
func (u *User) VerifyPassword(password string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HashPassword returns the bcrypt hash of password
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NormalizeEmail trims and lower-cases an email for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Directory finds users across tenant schemas
type Directory interface {
	// TenantSchemas lists the allow-listed tenant schemas that hold a users table, in name order
	TenantSchemas(ctx context.Context) ([]string, error)
	// FindByEmail returns the user with a case-insensitive email match in tenant,
	// or a NotFound domain error
	FindByEmail(ctx context.Context, tenant, email string) (*User, error)
}
