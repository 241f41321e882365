package shared

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

// Common domain errors
var (
	ErrDuplicateResource   = NewDomainError("DUPLICATE_RESOURCE", "Resource already exists")
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrPersistenceFailure  = NewDomainError("PERSISTENCE_FAILURE", "The write reported no effect")
	ErrInvalidCredential   = NewDomainError("INVALID_CREDENTIAL", "The supplied credential is incorrect")
	ErrNotificationFailure = NewDomainError("NOTIFICATION_FAILURE", "The notification could not be delivered")
	ErrValidationFailure   = NewDomainError("VALIDATION_FAILURE", "Invalid input provided")
)
