package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/infrastructure/auth"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// Logger for middleware logging
	Logger *zap.Logger
}

// JWTAuthMiddleware requires a valid bearer token and stores its claims, tenant
// and user on the gin context and the request logger.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(AuthHeaderKey))
		if !ok {
			rejectAuth(c, log, auth.ErrInvalidToken, "missing bearer token")
			return
		}

		claims, err := cfg.JWTService.Validate(token)
		if err != nil {
			rejectAuth(c, log, err, "token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			revoked, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				// fail open
				log.Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
			case revoked:
				rejectAuth(c, log, auth.ErrTokenBlacklisted, "token revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(logger.GinUserIDKey, claims.Subject)

		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.Subject)
		c.Request = c.Request.WithContext(ctx)

		setTenant(c, claims.Tenant)
		if c.IsAborted() {
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

// rejectAuth answers 401 with a message that does not reveal why the token failed
func rejectAuth(c *gin.Context, log *zap.Logger, err error, reason string) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
	)

	message := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		message = "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		message = "Token has been revoked"
	}
	abortWithCode(c, dto.ErrCodeUnauthorized, message)
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
