package dto

import (
	"net/http"
	"strings"
)

// Common error codes used directly by the HTTP layer
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall through to the suffix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	// Authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,
	"ACCOUNT_PENDING":     http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusUnauthorized,
	"TENANT_SUSPENDED":    http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"INVALID_PASSWORD":    http.StatusUnprocessableEntity,

	// Conflicts
	"EMAIL_TAKEN":       http.StatusConflict,
	"TENANT_CODE_TAKEN": http.StatusConflict,
	"SKU_TAKEN":         http.StatusConflict,
	"ALREADY_EXISTS":    http.StatusConflict,
	"SHIFT_OVERLAP":     http.StatusConflict,
	"SYNC_IN_PROGRESS":  http.StatusConflict,

	// Business rules
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"INVALID_QUANTITY":   http.StatusUnprocessableEntity,
	"MODULE_INACTIVE":    http.StatusUnprocessableEntity,
	"ITEM_INACTIVE":      http.StatusUnprocessableEntity,
	"EMPTY_PURCHASE":     http.StatusUnprocessableEntity,
	"NO_SCENES":          http.StatusUnprocessableEntity,
	"MISSING_CLIPS":      http.StatusUnprocessableEntity,
	"PROJECT_BUSY":       http.StatusUnprocessableEntity,
	"VIDEO_NOT_READY":    http.StatusUnprocessableEntity,
	"ROLE_UNCHANGED":     http.StatusUnprocessableEntity,
	"NOT_LOCKED":         http.StatusUnprocessableEntity,
	"PIPELINE_FAILED":    http.StatusUnprocessableEntity,

	// Upstream providers
	"SHIPPING_PROVIDER_ERROR": http.StatusBadGateway,
	"PLATFORM_UNAVAILABLE":    http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for a domain error code. Unknown
// codes are classified by suffix, defaulting to 400 so service layer
// validation codes do not surface as server errors.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_TAKEN"):
		return http.StatusConflict
	case strings.HasSuffix(code, "_ERROR"):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
