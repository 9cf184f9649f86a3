package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies generation failures.
type ErrorType string

const (
	ErrorTypeAuth     ErrorType = "auth"
	ErrorTypeModel    ErrorType = "model"
	ErrorTypeEndpoint ErrorType = "endpoint"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// Error represents a structured generation error with classification.
type Error struct {
	Type       ErrorType
	Message    string
	Retryable  bool
	Cause      error
	StatusCode int
	Model      string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	parts = append(parts, string(e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	if e.Model != "" {
		parts = append(parts, fmt.Sprintf("model=%s", e.Model))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface so the retry
// package can check retryability without importing generator.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewError creates a new structured generation error.
func NewError(errType ErrorType, message string, retryable bool, cause error) *Error {
	return &Error{
		Type:      errType,
		Message:   message,
		Retryable: retryable,
		Cause:     cause,
	}
}

// ClassifyError categorizes an error from a provider SDK into a structured
// Error. Both provider SDKs surface HTTP failures as opaque error strings,
// so classification is string-based.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)

	statusCode := 0
	for _, code := range []int{400, 401, 403, 404, 429, 500, 502, 503, 504, 529} {
		if strings.Contains(errStr, fmt.Sprintf("%d", code)) {
			statusCode = code
			break
		}
	}

	// Authentication errors (not retryable)
	if strings.Contains(errStr, "401") || strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "invalid api key") || strings.Contains(lower, "invalid x-api-key") {
		genErr := NewError(ErrorTypeAuth, "authentication failed", false, err)
		genErr.StatusCode = statusCode
		return genErr
	}

	// Model not found (not retryable without a config change)
	if strings.Contains(lower, "model") && (strings.Contains(lower, "not found") ||
		strings.Contains(lower, "does not exist")) {
		genErr := NewError(ErrorTypeModel, "model not found", false, err)
		genErr.StatusCode = statusCode
		return genErr
	}

	if strings.Contains(errStr, "404") {
		genErr := NewError(ErrorTypeEndpoint, "endpoint not found", false, err)
		genErr.StatusCode = statusCode
		return genErr
	}

	// Connection errors (retryable)
	if strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") {
		genErr := NewError(ErrorTypeEndpoint, "connection failed", true, err)
		genErr.StatusCode = statusCode
		return genErr
	}

	// Timeout and deadline exceeded (retryable)
	if strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded") {
		genErr := NewError(ErrorTypeEndpoint, "request timeout", true, err)
		genErr.StatusCode = statusCode
		return genErr
	}

	// Rate limiting and overload (retryable after backoff)
	if strings.Contains(errStr, "429") || strings.Contains(errStr, "529") ||
		strings.Contains(lower, "rate limit") || strings.Contains(lower, "overloaded") {
		genErr := NewError(ErrorTypeUnknown, "rate limited", true, err)
		genErr.StatusCode = statusCode
		return genErr
	}

	// 5xx server errors (retryable)
	if strings.Contains(errStr, "500") || strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") || strings.Contains(errStr, "504") {
		genErr := NewError(ErrorTypeEndpoint, "server error", true, err)
		genErr.StatusCode = statusCode
		return genErr
	}

	genErr = NewError(ErrorTypeUnknown, "generation error", false, err)
	genErr.StatusCode = statusCode
	return genErr
}

// IsRetryable returns true if the error is retryable.
func IsRetryable(err error) bool {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Retryable
	}
	return false
}
