package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("field is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "validation failed" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "validation failed")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("user", "123")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "user not found: 123" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "user not found: 123")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "user" {
		t.Errorf("NewNotFoundError should set resource context")
	}

	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "123" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewStoreError(t *testing.T) {
	cause := errors.New("connection timeout")
	err := NewStoreError("find membership", cause)

	if err.Type != ErrorTypeStore {
		t.Errorf("NewStoreError type = %v, want %v", err.Type, ErrorTypeStore)
	}
	if err.Message != "database operation failed: find membership" {
		t.Errorf("NewStoreError message = %v, want %v", err.Message, "database operation failed: find membership")
	}
	if err.Code != "DATABASE_ERROR" {
		t.Errorf("NewStoreError code = %v, want %v", err.Code, "DATABASE_ERROR")
	}
	if err.Cause != cause {
		t.Errorf("NewStoreError cause = %v, want %v", err.Cause, cause)
	}

	operation, ok := err.GetContext("operation")
	if !ok || operation != "find membership" {
		t.Errorf("NewStoreError should set operation context")
	}
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("membership", "already a member")

	if err.Type != ErrorTypeConflict {
		t.Errorf("NewConflictError type = %v, want %v", err.Type, ErrorTypeConflict)
	}
	if err.Message != "membership: already a member" {
		t.Errorf("NewConflictError message = %v, want %v", err.Message, "membership: already a member")
	}
	if reason, ok := err.GetContext("reason"); !ok || reason != "already a member" {
		t.Errorf("NewConflictError should set reason context")
	}
}

func TestNewNotMemberError(t *testing.T) {
	err := NewNotMemberError("p-1")

	if err.Type != ErrorTypeForbidden {
		t.Errorf("NewNotMemberError type = %v, want %v", err.Type, ErrorTypeForbidden)
	}
	if err.Code != "NOT_A_MEMBER" {
		t.Errorf("NewNotMemberError code = %v, want %v", err.Code, "NOT_A_MEMBER")
	}
	if projectID, ok := err.GetContext("project_id"); !ok || projectID != "p-1" {
		t.Errorf("NewNotMemberError should set project_id context")
	}
}

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("generate subtasks", "5s")

	if err.Type != ErrorTypeTimeout {
		t.Errorf("NewTimeoutError type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if err.Message != "operation timed out: generate subtasks" {
		t.Errorf("NewTimeoutError message = %v, want %v", err.Message, "operation timed out: generate subtasks")
	}
	if err.Code != "TIMEOUT" {
		t.Errorf("NewTimeoutError code = %v, want %v", err.Code, "TIMEOUT")
	}

	timeout, ok := err.GetContext("timeout")
	if !ok || timeout != "5s" {
		t.Errorf("NewTimeoutError should set timeout context")
	}
}

func TestNewForbiddenError(t *testing.T) {
	err := NewForbiddenError("add member", "project")

	if err.Type != ErrorTypeForbidden {
		t.Errorf("NewForbiddenError type = %v, want %v", err.Type, ErrorTypeForbidden)
	}
	if err.Message != "permission denied for add member on project" {
		t.Errorf("NewForbiddenError message = %v, want %v", err.Message, "permission denied for add member on project")
	}
	if err.Code != "PERMISSION_DENIED" {
		t.Errorf("NewForbiddenError code = %v, want %v", err.Code, "PERMISSION_DENIED")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeStore, "wrapped message")

	if err.Type != ErrorTypeStore {
		t.Errorf("WrapError type = %v, want %v", err.Type, ErrorTypeStore)
	}
	if err.Message != "wrapped message" {
		t.Errorf("WrapError message = %v, want %v", err.Message, "wrapped message")
	}
	if err.Code != "store" {
		t.Errorf("WrapError code = %v, want %v", err.Code, "store")
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestIsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}
	regularError := errors.New("regular error")

	if !IsAppError(appError) {
		t.Errorf("IsAppError should return true for AppError")
	}

	if !IsAppError(fmt.Errorf("outer: %w", appError)) {
		t.Errorf("IsAppError should return true for wrapped AppError")
	}

	if IsAppError(regularError) {
		t.Errorf("IsAppError should return false for regular error")
	}

	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestAsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}
	regularError := errors.New("regular error")

	result, ok := AsAppError(appError)
	if !ok {
		t.Errorf("AsAppError should return true for AppError")
	}
	if result != appError {
		t.Errorf("AsAppError should return the same AppError instance")
	}

	result, ok = AsAppError(regularError)
	if ok {
		t.Errorf("AsAppError should return false for regular error")
	}
	if result != nil {
		t.Errorf("AsAppError should return nil for regular error")
	}
}

func TestIsErrorType(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}
	regularError := errors.New("regular error")

	if !IsErrorType(appError, ErrorTypeValidation) {
		t.Errorf("IsErrorType should return true for matching type")
	}

	if IsErrorType(appError, ErrorTypeStore) {
		t.Errorf("IsErrorType should return false for different type")
	}

	if IsErrorType(regularError, ErrorTypeValidation) {
		t.Errorf("IsErrorType should return false for regular error")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Validation error", NewValidationError("bad", nil), http.StatusBadRequest},
		{"Auth error", NewAuthError("Unauthorized"), http.StatusUnauthorized},
		{"Not a member", NewNotMemberError("p"), http.StatusForbidden},
		{"Unprocessable", NewUnprocessableError("none valid"), http.StatusUnprocessableEntity},
		{"Timeout", NewTimeoutError("generate", "1s"), http.StatusGatewayTimeout},
		{"Wrapped parse error", fmt.Errorf("ctx: %w", NewParseError("bad json", nil)), http.StatusBadRequest},
		{"Regular error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      NewValidationError("invalid input", nil),
			expected: "invalid input",
		},
		{
			name:     "Not found error",
			err:      NewNotFoundError("user", "123"),
			expected: "user not found: 123",
		},
		{
			name:     "Store error hides cause",
			err:      NewStoreError("query", errors.New("disk I/O error")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "Timeout error",
			err:      NewTimeoutError("query", "5s"),
			expected: "The operation timed out. Please try again.",
		},
		{
			name:     "Generation error with cause",
			err:      NewGenerationError("provider call failed", errors.New("429 rate limited")),
			expected: "AI generation failed: provider call failed: 429 rate limited",
		},
		{
			name:     "Parse error",
			err:      NewParseError("response is not JSON", nil),
			expected: "Failed to parse AI response: response is not JSON",
		},
		{
			name:     "Forbidden error",
			err:      NewForbiddenError("delete", "user"),
			expected: "permission denied for delete on user",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	appError := &AppError{Code: "VALIDATION_FAILED"}
	regularError := errors.New("regular error")

	if GetErrorCode(appError) != "VALIDATION_FAILED" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}

	if GetErrorCode(regularError) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid input", nil), false},
		{"Auth error", NewAuthError("Unauthorized"), false},
		{"Forbidden error", NewNotMemberError("p"), false},
		{"Not found error", NewNotFoundError("user", "123"), false},
		{"Conflict error", NewConflictError("membership", "already a member"), false},
		{"Store error", NewStoreError("query", errors.New("timeout")), true},
		{"Integrity error", NewIntegrityError("parent not in project", nil), true},
		{"Generation error", NewGenerationError("empty response", nil), true},
		{"Timeout error", NewTimeoutError("query", "5s"), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShouldLogError(tt.err)
			if result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
