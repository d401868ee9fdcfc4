package dto

import (
	"net/http"
	"strings"

	"github.com/retail-inventory/backend/internal/domain/shared"
)

// Codes raised by the HTTP layer itself. Domain codes come from the shared
// package and are passed through unchanged.
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeTokenRevoked    = "TOKEN_REVOKED"
	ErrCodeInvalidToken    = "INVALID_TOKEN"
	ErrCodeTenantRequired  = "TENANT_REQUIRED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeInvalidCreds    = "INVALID_CREDENTIALS"
	ErrCodeRetailInactive  = "RETAIL_INACTIVE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:        http.StatusBadRequest,
	shared.CodeNotFound:          http.StatusNotFound,
	shared.CodeAlreadyExists:     http.StatusConflict,
	shared.CodeOptimisticLock:    http.StatusConflict,
	shared.CodeCapacityExceeded:  http.StatusUnprocessableEntity,
	shared.CodeInsufficientStock: http.StatusUnprocessableEntity,
	shared.CodeInvalidState:      http.StatusUnprocessableEntity,
	shared.CodeTransactionFailed: http.StatusInternalServerError,
	shared.CodeForbidden:         http.StatusForbidden,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenRevoked:    http.StatusUnauthorized,
	ErrCodeInvalidToken:    http.StatusUnauthorized,
	ErrCodeTenantRequired:  http.StatusForbidden,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeInvalidCreds:    http.StatusUnauthorized,
	ErrCodeRetailInactive:  http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status code for an error code. Field level
// codes such as INVALID_QUANTITY are client errors; anything else unknown is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
