package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	tenantKey    contextKey = "tenant_id"
	userIDKey    contextKey = "user_id"
)

// WithContext stores logger in ctx
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID records the request ID in ctx and returns the enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return enrich(ctx, logger, requestIDKey, requestID)
}

// WithTenant records the tenant schema in ctx and returns the enriched logger
func WithTenant(ctx context.Context, logger *zap.Logger, tenant string) (context.Context, *zap.Logger) {
	return enrich(ctx, logger, tenantKey, tenant)
}

// WithUserID records the authenticated user in ctx and returns the enriched logger
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return enrich(ctx, logger, userIDKey, userID)
}

func enrich(ctx context.Context, logger *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	enriched := logger.With(zap.String(string(key), value))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID returns the request ID stored in ctx
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// GetTenant returns the tenant schema stored in ctx
func GetTenant(ctx context.Context) string {
	return stringValue(ctx, tenantKey)
}

// GetUserID returns the user ID stored in ctx
func GetUserID(ctx context.Context) string {
	return stringValue(ctx, userIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// ContextLogger logs with the request, tenant, user and trace fields found in its context
type ContextLogger struct {
	ctx    context.Context
	logger *zap.Logger
}

// L returns a ContextLogger for ctx using the logger stored in it
func L(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: FromContext(ctx)}
}

func (cl *ContextLogger) fields() []zap.Field {
	var fields []zap.Field
	if spanCtx := trace.SpanContextFromContext(cl.ctx); spanCtx.IsValid() {
		fields = append(fields,
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("span_id", spanCtx.SpanID().String()),
		)
	}
	for _, key := range []contextKey{requestIDKey, tenantKey, userIDKey} {
		if v := stringValue(cl.ctx, key); v != "" {
			fields = append(fields, zap.String(string(key), v))
		}
	}
	return fields
}

// Zap returns the underlying logger with the context fields attached
func (cl *ContextLogger) Zap() *zap.Logger {
	return cl.logger.With(cl.fields()...)
}

// Debug logs at debug level
func (cl *ContextLogger) Debug(msg string, fields ...zap.Field) { cl.Zap().Debug(msg, fields...) }

// Info logs at info level
func (cl *ContextLogger) Info(msg string, fields ...zap.Field) { cl.Zap().Info(msg, fields...) }

// Warn logs at warn level
func (cl *ContextLogger) Warn(msg string, fields ...zap.Field) { cl.Zap().Warn(msg, fields...) }

// Error logs at error level
func (cl *ContextLogger) Error(msg string, fields ...zap.Field) { cl.Zap().Error(msg, fields...) }
