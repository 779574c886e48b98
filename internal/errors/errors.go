package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewAuthError creates an error for a request without a usable session
func NewAuthError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAuth,
		Message: message,
		Code:    "UNAUTHENTICATED",
		Context: make(map[string]interface{}),
	}
}

// NewForbiddenError creates a new permission error
func NewForbiddenError(operation string, resource string) *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: fmt.Sprintf("permission denied for %s on %s", operation, resource),
		Code:    "PERMISSION_DENIED",
		Context: map[string]interface{}{
			"operation": operation,
			"resource":  resource,
		},
	}
}

// NewNotMemberError creates the forbidden error returned when the caller has no membership row
func NewNotMemberError(projectID string) *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: "forbidden: you are not a member of this project",
		Code:    "NOT_A_MEMBER",
		Context: map[string]interface{}{
			"project_id": projectID,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewConflictError creates an error for a write that collides with existing data
func NewConflictError(resource string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: fmt.Sprintf("%s: %s", resource, reason),
		Code:    "CONFLICT",
		Context: map[string]interface{}{
			"resource": resource,
			"reason":   reason,
		},
	}
}

// NewIntegrityError creates an error for referenced entities that do not relate as expected
func NewIntegrityError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeIntegrity,
		Message: message,
		Code:    "INTEGRITY_ERROR",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewGenerationError creates an error for a failed or empty model call
func NewGenerationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeGeneration,
		Message: message,
		Code:    "GENERATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewParseError creates an error for model output that is not valid JSON or has the wrong shape
func NewParseError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: message,
		Code:    "PARSE_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewUnprocessableError creates an error for model output where no element survived validation
func NewUnprocessableError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnprocessable,
		Message: message,
		Code:    "UNPROCESSABLE",
		Context: make(map[string]interface{}),
	}
}

// NewStoreError creates a new persistence error
func NewStoreError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStore,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// HTTPStatus returns the response status for an error; unknown errors are internal
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeStore:
			return "A database error occurred. Please try again."
		case ErrorTypeGeneration:
			if appErr.Cause != nil {
				return fmt.Sprintf("AI generation failed: %s: %v", appErr.Message, appErr.Cause)
			}
			return "AI generation failed: " + appErr.Message
		case ErrorTypeParse:
			if appErr.Cause != nil {
				return fmt.Sprintf("Failed to parse AI response: %s: %v", appErr.Message, appErr.Cause)
			}
			return "Failed to parse AI response: " + appErr.Message
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return appErr.Message
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeAuth, ErrorTypeForbidden, ErrorTypeNotFound, ErrorTypeConflict:
			return false // These are user errors, not system errors
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
