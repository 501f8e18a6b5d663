package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingTenant    = errors.New("missing tenant in claims")
	ErrMissingSubject   = errors.New("missing subject in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims carries the identity of a back-office user. Subject holds the user ID
// and Tenant the schema the user belongs to.
type Claims struct {
	jwt.RegisteredClaims
	Tenant string `json:"tenant"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// UserID parses the subject as a numeric user ID
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidClaims
	}
	return id, nil
}

// RemainingTTL returns how long the token stays valid, zero once expired
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if ttl := time.Until(c.ExpiresAt.Time); ttl > 0 {
		return ttl
	}
	return 0
}

// TokenInput describes the user a token is issued for
type TokenInput struct {
	UserID int64
	Tenant string
	Name   string
	Email  string
}

// SignedToken is an issued token with its expiry
type SignedToken struct {
	Token     string
	ExpiresAt time.Time
}

// JWTService issues and validates HS256 tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// Expiration returns the lifetime of issued tokens
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// Generate signs a token for the given user
func (s *JWTService) Generate(input TokenInput) (*SignedToken, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(input.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Tenant: input.Tenant,
		Name:   input.Name,
		Email:  input.Email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &SignedToken{Token: token, ExpiresAt: expiresAt}, nil
}

// Validate parses tokenString and returns its claims
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Tenant == "" {
		return nil, ErrMissingTenant
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
