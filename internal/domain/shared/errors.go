package shared

import (
	"errors"
	"fmt"
)

// Error codes used across the ledger
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeInvalidCreditTerms  = "INVALID_CREDIT_TERMS"
	CodeTerminalState       = "TERMINAL_STATE"
	CodeNoInstallments      = "NO_INSTALLMENTS"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeInfrastructure      = "INFRASTRUCTURE_ERROR"
	CodeInvalidTenant       = "INVALID_TENANT"
	CodeUnauthorized        = "UNAUTHORIZED"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target carries the same code
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error that keeps the original cause
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Common domain errors, usable as errors.Is targets
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrProductNotFound     = NewDomainError(CodeProductNotFound, "Product not found")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrInvalidCreditTerms  = NewDomainError(CodeInvalidCreditTerms, "Invalid credit terms")
	ErrTerminalState       = NewDomainError(CodeTerminalState, "Operation not allowed in terminal state")
	ErrNoInstallments      = NewDomainError(CodeNoInstallments, "Credit has no installments configured")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrInfrastructure      = NewDomainError(CodeInfrastructure, "Internal storage failure")
	ErrInvalidTenant       = NewDomainError(CodeInvalidTenant, "Invalid tenant")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
)

// NewValidationError creates a validation error with a caller-facing message
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError creates a not-found error for the given resource
func NewNotFoundError(resource string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", resource, id))
}

// NewInfrastructureError wraps a storage or connection failure.
// The message is opaque; the cause is only available through Unwrap.
func NewInfrastructureError(op string, cause error) *DomainError {
	return WrapDomainError(CodeInfrastructure, fmt.Sprintf("storage failure during %s", op), cause)
}

// NewConcurrencyConflictError wraps lock contention reported by the store
func NewConcurrencyConflictError(cause error) *DomainError {
	return WrapDomainError(CodeConcurrencyConflict, "Resource is locked or was modified concurrently, retry the request", cause)
}

// AsDomainError extracts a DomainError from err
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsCode reports whether err is a DomainError with the given code
func IsCode(err error, code string) bool {
	de, ok := AsDomainError(err)
	return ok && de.Code == code
}
