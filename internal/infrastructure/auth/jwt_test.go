package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/retail/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     testSecret,
		Expiration: expiration,
		Issuer:     "backoffice-test",
	})
}

func testInput() TokenInput {
	return TokenInput{
		UserID: 7,
		Tenant: "tenant_demo",
		Name:   "Ana Pérez",
		Email:  "ana@demo.com",
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(8 * time.Hour)

	signed, err := svc.Generate(testInput())
	require.NoError(t, err)
	assert.NotEmpty(t, signed.Token)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), signed.ExpiresAt, time.Minute)

	claims, err := svc.Validate(signed.Token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "tenant_demo", claims.Tenant)
	assert.Equal(t, "Ana Pérez", claims.Name)
	assert.Equal(t, "ana@demo.com", claims.Email)
	assert.Equal(t, "backoffice-test", claims.Issuer)
	assert.Len(t, claims.ID, 36)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.InDelta(t, (8 * time.Hour).Seconds(), claims.RemainingTTL().Seconds(), 60)
}

func TestJWTService_TokensHaveDistinctIDs(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	a, err := svc.Generate(testInput())
	require.NoError(t, err)
	b, err := svc.Generate(testInput())
	require.NoError(t, err)

	ca, err := svc.Validate(a.Token)
	require.NoError(t, err)
	cb, err := svc.Validate(b.Token)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTService_Validate_Errors(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	sign := func(claims *Claims, method jwt.SigningMethod, key any) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	valid := func() *Claims {
		now := time.Now()
		return &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "7",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			Tenant: "tenant_demo",
		}
	}

	tests := []struct {
		name    string
		token   func() string
		wantErr error
	}{
		{
			name:    "garbage",
			token:   func() string { return "not-a-token" },
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired",
			token: func() string {
				c := valid()
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
				return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "not yet valid",
			token: func() string {
				c := valid()
				c.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
				return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "wrong secret",
			token: func() string {
				return sign(valid(), jwt.SigningMethodHS256, []byte("another-secret-of-sufficient-size"))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "unsigned",
			token: func() string {
				return sign(valid(), jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing tenant",
			token: func() string {
				c := valid()
				c.Tenant = ""
				return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
			},
			wantErr: ErrMissingTenant,
		},
		{
			name: "missing subject",
			token: func() string {
				c := valid()
				c.Subject = ""
				return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
			},
			wantErr: ErrMissingSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Validate(tt.token())
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClaims_UserID_Invalid(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.UserID()
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestClaims_RemainingTTL(t *testing.T) {
	assert.Zero(t, (&Claims{}).RemainingTTL())

	expired := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	assert.Zero(t, expired.RemainingTTL())
}
