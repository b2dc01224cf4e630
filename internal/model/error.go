package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeValidation    = "VALIDATION"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeStateConflict = "STATE_CONFLICT"
	ErrCodeInvalidStatus = "INVALID_STATUS"
	ErrCodeUnauthorised  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code the handler
// layer maps to an HTTP status.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a VALIDATION error with a caller-facing message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// NewStateConflictError creates a STATE_CONFLICT error naming the blocking
// condition.
func NewStateConflictError(message string) *DomainError {
	return NewDomainError(ErrCodeStateConflict, message)
}

// ErrorCode extracts the domain error code from err, or empty if err carries
// none.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Common domain errors
var (
	ErrEmptyOrder      = NewValidationError("Order must contain at least one item")
	ErrOrderNotFound   = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrProductNotFound = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrInvalidStatus   = NewDomainError(ErrCodeInvalidStatus, "Invalid status value")
	ErrUnauthorised    = NewDomainError(ErrCodeUnauthorised, "Authentication required")
	ErrForbidden       = NewDomainError(ErrCodeForbidden, "Admin access required")
)
