package dto

import (
	"net/http"

	"github.com/retail/backoffice/internal/domain/shared"
)

// Error codes returned in the response envelope. Domain codes are passed
// through unchanged; the HTTP layer adds its own for malformed input and
// transport failures.
const (
	ErrCodeValidation          = shared.CodeValidation
	ErrCodeNotFound            = shared.CodeNotFound
	ErrCodeProductNotFound     = shared.CodeProductNotFound
	ErrCodeInsufficientStock   = shared.CodeInsufficientStock
	ErrCodeInvalidCreditTerms  = shared.CodeInvalidCreditTerms
	ErrCodeTerminalState       = shared.CodeTerminalState
	ErrCodeNoInstallments      = shared.CodeNoInstallments
	ErrCodeConcurrencyConflict = shared.CodeConcurrencyConflict
	ErrCodeInfrastructure      = shared.CodeInfrastructure
	ErrCodeInvalidTenant       = shared.CodeInvalidTenant
	ErrCodeUnauthorized        = shared.CodeUnauthorized
)

// HTTP-only error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeRouteNotFound is used for unknown routes
	ErrCodeRouteNotFound = "ROUTE_NOT_FOUND"
	// ErrCodeInternal is used for panics and unclassified failures
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeServiceUnavailable is used when a dependency is down
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	// ErrCodeForbidden is used when the caller may not reach a resource at all
	ErrCodeForbidden = "FORBIDDEN"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeInvalidTenant:       http.StatusBadRequest,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeInvalidJSON:         http.StatusBadRequest,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeProductNotFound:     http.StatusNotFound,
	ErrCodeRouteNotFound:       http.StatusNotFound,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	ErrCodeInsufficientStock:  http.StatusUnprocessableEntity,
	ErrCodeInvalidCreditTerms: http.StatusUnprocessableEntity,
	ErrCodeTerminalState:      http.StatusUnprocessableEntity,

	// A credit without installments is corrupt data, not a caller mistake
	ErrCodeNoInstallments:     http.StatusInternalServerError,
	ErrCodeInfrastructure:     http.StatusInternalServerError,
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsServerError reports whether the code maps to a 5xx status
func IsServerError(code string) bool {
	return GetHTTPStatus(code) >= http.StatusInternalServerError
}
