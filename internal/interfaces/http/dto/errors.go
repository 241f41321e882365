package dto

import "net/http"

// Error codes surfaced by the API. The domain taxonomy passes through
// unchanged; the boundary adds the two generic codes.
const (
	ErrCodeDuplicateResource   = "DUPLICATE_RESOURCE"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodePersistenceFailure  = "PERSISTENCE_FAILURE"
	ErrCodeInvalidCredential   = "INVALID_CREDENTIAL"
	ErrCodeNotificationFailure = "NOTIFICATION_FAILURE"
	ErrCodeValidationFailure   = "VALIDATION_FAILURE"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// statusByCode maps error codes to HTTP status codes
var statusByCode = map[string]int{
	ErrCodeDuplicateResource:   http.StatusConflict,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodePersistenceFailure:  http.StatusInternalServerError,
	ErrCodeInvalidCredential:   http.StatusUnauthorized,
	ErrCodeNotificationFailure: http.StatusBadGateway,
	ErrCodeValidationFailure:   http.StatusBadRequest,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
