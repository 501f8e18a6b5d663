package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
)

// abortWithError stops the chain with the standard error envelope
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, c.GetString(logger.GinRequestIDKey)))
}

// abortWithCode derives the status from the error code
func abortWithCode(c *gin.Context, code, message string) {
	abortWithError(c, dto.GetHTTPStatus(code), code, message)
}
