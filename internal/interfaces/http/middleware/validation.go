package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/domain/sales"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
)

var setupValidatorOnce sync.Once

// SetupValidator configures gin's validator with JSON field names and the
// ledger enum tags. It is safe to call more than once.
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		RegisterValidators(v)
	})
}

// RegisterValidators installs the custom tags on v
func RegisterValidators(v *validator.Validate) {
	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("sale_status", parsedBy(func(s string) error {
		_, err := sales.ParseSaleStatus(s)
		return err
	}))
	_ = v.RegisterValidation("sale_type", parsedBy(func(s string) error {
		_, err := sales.ParseSaleType(s)
		return err
	}))
	_ = v.RegisterValidation("payment_method", parsedBy(func(s string) error {
		_, err := sales.ParsePaymentMethod(s)
		return err
	}))
	_ = v.RegisterValidation("rating", parsedBy(func(s string) error {
		_, err := sales.ParseRating(s)
		return err
	}))
	_ = v.RegisterValidation("tenant_schema", func(fl validator.FieldLevel) bool {
		return shared.ValidTenantSchema(fl.Field().String())
	})
}

// parsedBy adapts a domain parser into a string field validator
func parsedBy(parse func(string) error) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return parse(fl.Field().String()) == nil
	}
}

// FormatValidationErrors formats validation errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	}

	return dto.NewValidationErrorResponse(
		"Request validation failed",
		requestID,
		details,
	)
}

// HandleValidationError returns a validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString(logger.GinRequestIDKey)))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "dive":
		return "Invalid item"
	case "sale_status":
		return "Unknown sale status"
	case "sale_type":
		return "Must be contado or credito"
	case "payment_method":
		return "Payment method is required"
	case "rating":
		return "Must be one of: Pendiente Positivo Negativo Hurto"
	case "tenant_schema":
		return "Must contain only letters, digits and underscores"
	default:
		return "Invalid value"
	}
}
