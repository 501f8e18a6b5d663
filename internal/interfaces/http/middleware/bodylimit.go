package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
)

// DefaultMaxBodySize caps sale and payment payloads when no limit is configured
const DefaultMaxBodySize int64 = 1 << 20

// BodyLimit rejects bodies above maxBytes and caps streamed bodies at the same size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBadRequest, "request body exceeds maximum allowed size")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
