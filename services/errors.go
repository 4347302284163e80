package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeExternal     ErrorType = "external"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is. Two domain errors match when their types match.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Caller-facing details of authentication failures
const (
	MsgMissingAuthorization = "Authorization header is missing"
	MsgInvalidAuthFormat    = "Invalid authorization header format"
	MsgInvalidToken         = "Invalid token"
)

// Authentication failure reasons, used for logs and metrics labels
const (
	AuthReasonMissingHeader = "missing_header"
	AuthReasonInvalidFormat = "invalid_format"
	AuthReasonEmptyToken    = "empty_token"
	AuthReasonTokenMismatch = "token_mismatch"
)

// ErrUnauthorized is the sentinel every authentication failure matches with errors.Is.
var ErrUnauthorized = NewDomainError(ErrorTypeUnauthorized, "unauthorized", nil)

// ErrInvalidBody is returned when the request body cannot be decoded.
var ErrInvalidBody = NewDomainError(ErrorTypeValidation, "invalid request body", nil)

// NewAuthError builds an unauthorized error carrying the failure reason in its details.
func NewAuthError(message, reason string) *DomainError {
	return NewDomainError(ErrorTypeUnauthorized, message, nil).WithDetail("reason", reason)
}

// GetAuthReason returns the reason recorded by NewAuthError, or empty string
func GetAuthReason(err error) string {
	if reason, ok := GetErrorDetails(err)["reason"].(string); ok {
		return reason
	}
	return ""
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return hasType(err, ErrorTypeUnauthorized)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsExternalError checks if an error is an external backend error
func IsExternalError(err error) bool {
	return hasType(err, ErrorTypeExternal)
}

func hasType(err error, errType ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == errType
	}
	return false
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorMessage returns the caller-facing message of a domain error, or empty string
func GetErrorMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapValidation wraps an error as a validation error
func WrapValidation(message string, err error) error {
	return NewDomainError(ErrorTypeValidation, message, err)
}

// WrapExternal wraps a knowledge base failure as an external error
func WrapExternal(message string, err error) error {
	return NewDomainError(ErrorTypeExternal, message, err)
}
