package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the request header carrying the client's replay key
const IdempotencyKeyHeader = "Idempotency-Key"

const (
	maxIdempotencyKeyLength = 255
	defaultIdempotencyTTL   = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency guard
type IdempotencyConfig struct {
	Store  shared.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency rejects a repeated Idempotency-Key within the TTL with 409.
// Keys are scoped to tenant and route. A request that does not succeed
// releases its key so the client can retry it. Requests without the header
// pass through untouched.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" || cfg.Store == nil {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abortWithCode(c, dto.ErrCodeValidation, "Idempotency-Key must be at most 255 characters")
			return
		}

		ctx := c.Request.Context()
		fingerprint := idempotencyFingerprint(GetTenant(c), c.Request.Method, c.FullPath(), key)

		claimed, err := cfg.Store.Claim(ctx, fingerprint, ttl)
		if err != nil {
			// fail open
			log.Error("Idempotency store unavailable", zap.String("tenant_id", GetTenant(c)), zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			log.Info("Duplicate request rejected",
				zap.String("tenant_id", GetTenant(c)),
				zap.String("route", c.FullPath()),
			)
			abortWithCode(c, dto.ErrCodeConcurrencyConflict, "duplicate request")
			return
		}

		c.Next()

		if status := c.Writer.Status(); status < http.StatusOK || status >= http.StatusMultipleChoices {
			if err := cfg.Store.Release(ctx, fingerprint); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
		}
	}
}

// idempotencyFingerprint derives a fixed-size store key from the request scope
func idempotencyFingerprint(tenant, method, route, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(tenant+"|"+method+"|"+route+"|"+key)).String()
}
