package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrDuplicateKey     = NewDomainError("DUPLICATE_KEY", "Document number already exists")
	ErrMissingField     = NewDomainError("MISSING_FIELD", "All fields are required")
	ErrInvalidFormat    = NewDomainError("INVALID_FORMAT", "Invalid input format")
	ErrQuantityExceeded = NewDomainError("QUANTITY_EXCEEDED", "Quantity exceeds the available balance")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInternal         = NewDomainError("INTERNAL", "Internal server error")
)
