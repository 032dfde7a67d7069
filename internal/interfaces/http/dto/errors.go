package dto

import "net/http"

// Domain error codes surfaced by the API. Every error response carries
// exactly one of these.
const (
	// ErrCodeMissingField is used when a required field is absent
	ErrCodeMissingField = "MISSING_FIELD"
	// ErrCodeInvalidFormat is used when a field value is malformed or out of range
	ErrCodeInvalidFormat = "INVALID_FORMAT"
	// ErrCodeDuplicateKey is used when a business key is already taken
	ErrCodeDuplicateKey = "DUPLICATE_KEY"
	// ErrCodeNotFound is used when a document or user does not exist
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeQuantityExceeded is used when a write would overdraw upstream capacity
	ErrCodeQuantityExceeded = "QUANTITY_EXCEEDED"
	// ErrCodeUnauthorized is used for authentication and permission failures
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeMissingField:     http.StatusBadRequest,
	ErrCodeInvalidFormat:    http.StatusBadRequest,
	ErrCodeDuplicateKey:     http.StatusConflict,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeQuantityExceeded: http.StatusUnprocessableEntity,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeInternal:         http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
