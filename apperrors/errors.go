package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Transport errors
	ErrNetwork           = errors.New("network request failed")
	ErrMalformedResponse = errors.New("malformed response body")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Pagination errors
	ErrPageExhausted = errors.New("pagination exhausted")

	// Upload errors
	ErrUploadFailed = errors.New("upload failed")
)

// APIError is the structured error the backend returns for any non-2xx
// response: {"message": "...", "error": "...", "statusCode": 404}.
type APIError struct {
	Message    string `json:"message"`
	Code       string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// Error implements error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// NewAPIError creates an APIError with the given status code, machine code
// and human message.
func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// NewGenericAPIError synthesizes an APIError for responses whose error body
// could not be parsed.
func NewGenericAPIError(statusCode int) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       "Unknown",
		Message:    "An error occurred",
	}
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == statusCode
	}
	return false
}

// IsUnauthorized reports whether err is a 401 API error.
func IsUnauthorized(err error) bool {
	return IsStatus(err, 401)
}

// ValidationError represents a client-side validation failure. It is
// reported before any request is issued.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap implements errors.Unwrap interface
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a ValidationError for a field with a
// user-displayable message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidation reports whether err originated from client-side validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
