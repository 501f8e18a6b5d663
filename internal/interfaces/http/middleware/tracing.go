package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"github.com/retail/backoffice/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns the otelgin middleware. Span names follow the route
// pattern, e.g. "POST /api/v1/creditos/:id/pagos".
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(serviceName)
}

// SpanEnricher copies request, tenant and user identifiers onto the server
// span. It runs after authentication so the tenant is known.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			telemetry.SetAttributes(span,
				"request_id", c.GetString(logger.GinRequestIDKey),
				telemetry.SpanAttrTenant, GetTenant(c),
				"user_id", c.GetString(logger.GinUserIDKey),
			)
		}
		c.Next()
	}
}
