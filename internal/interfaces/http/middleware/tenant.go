package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// TenantHeaderKey carries the tenant schema when bearer authentication is disabled
const TenantHeaderKey = "X-Tenant-ID"

// HeaderTenantMiddleware takes the tenant schema from X-Tenant-ID. It stands
// in for JWTAuthMiddleware in development deployments that run without auth.
func HeaderTenantMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		tenant := c.GetHeader(TenantHeaderKey)
		if tenant == "" {
			log.Warn("Request without tenant header", zap.String("path", c.Request.URL.Path))
			abortWithCode(c, dto.ErrCodeInvalidTenant, "X-Tenant-ID header is required")
			return
		}
		setTenant(c, tenant)
	}
}

// setTenant validates the schema name and stores it for handlers and logs.
// The chain is aborted for names outside the allow-list.
func setTenant(c *gin.Context, tenant string) {
	if !shared.ValidTenantSchema(tenant) {
		abortWithCode(c, dto.ErrCodeInvalidTenant, "Invalid tenant")
		return
	}

	c.Set(logger.GinTenantKey, tenant)
	ctx := c.Request.Context()
	ctx, _ = logger.WithTenant(ctx, logger.FromContext(ctx), tenant)
	c.Request = c.Request.WithContext(ctx)
}

// GetTenant returns the tenant schema resolved for the request
func GetTenant(c *gin.Context) string {
	return c.GetString(logger.GinTenantKey)
}
