package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"github.com/retail/backoffice/internal/infrastructure/telemetry"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"github.com/retail/backoffice/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.GinRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(logger.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// HandleError converts an error returned by a service into the response
// envelope. Server-side failures are logged with their cause and answered
// with the opaque domain message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()
	domainErr, ok := shared.AsDomainError(err)
	if !ok {
		logger.FromContext(ctx).Error("Unhandled error",
			zap.String("trace_id", telemetry.GetTraceID(ctx)),
			zap.Error(err),
		)
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
		return
	}

	if dto.IsServerError(domainErr.Code) {
		logger.FromContext(ctx).Error("Request failed",
			zap.String("code", domainErr.Code),
			zap.String("trace_id", telemetry.GetTraceID(ctx)),
			zap.Error(err),
		)
	}
	h.ErrorWithCode(c, domainErr.Code, domainErr.Message)
}

// HandleBindError answers a failed ShouldBind call. Validator failures list
// the offending fields; malformed JSON is reported as INVALID_JSON.
func (h *BaseHandler) HandleBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		middleware.HandleValidationError(c, err)
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.Is(err, io.EOF) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Request body is required")
		return
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Malformed JSON body")
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
}

// tenant returns the tenant resolved by the auth middleware
func tenant(c *gin.Context) string {
	return middleware.GetTenant(c)
}

// parseID reads a positive numeric path parameter. It writes the error
// response itself and reports false when the parameter is invalid.
func (h *BaseHandler) parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		h.ErrorWithCode(c, dto.ErrCodeValidation, "Invalid "+param)
		return 0, false
	}
	return id, true
}
