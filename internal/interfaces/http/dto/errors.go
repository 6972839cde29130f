package dto

import (
	"net/http"
	"strings"
)

// Error codes the transport layer emits itself. Domain errors carry their own
// codes and map through GetHTTPStatus.
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
	ErrCodeInternal    = "INTERNAL"
	ErrCodeNotFound    = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":   http.StatusUnprocessableEntity,
	"RATE_UNAVAILABLE":     http.StatusServiceUnavailable,
	"BAD_REQUEST":          http.StatusBadRequest,
	"INVALID_JSON":         http.StatusBadRequest,
	"INTERNAL":             http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code. Validation codes
// all start with INVALID_ and map to 400 unless listed explicitly; anything
// unknown is a 500 so a new domain error cannot silently succeed.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
