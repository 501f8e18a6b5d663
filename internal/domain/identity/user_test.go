package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUser_VerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		user     *User
		password string
		want     bool
	}{
		{"matching password", &User{PasswordHash: hash}, "s3cret", true},
		{"wrong password", &User{PasswordHash: hash}, "S3cret", false},
		{"empty hash", &User{}, "", false},
		{"nil user", nil, "s3cret", false},
		{"malformed hash", &User{PasswordHash: "plain"}, "plain", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.VerifyPassword(tt.password))
		})
	}
}

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("", bcrypt.MinCost)
	assert.Error(t, err)

	hash, err := HashPassword("abc", 0)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@demo.com", NormalizeEmail("  Ana@Demo.COM "))
}
