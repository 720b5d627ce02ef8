package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies a provider failure.
type ErrorType string

const (
	// ErrorTypeUnavailable marks transient provider failures (5xx, timeouts,
	// rate limits) that survived bounded retries.
	ErrorTypeUnavailable ErrorType = "provider_unavailable"
	// ErrorTypeBlocked marks prompts or responses rejected by the provider's
	// safety filter. Clients message this differently from generic failures.
	ErrorTypeBlocked ErrorType = "content_blocked"
	// ErrorTypeMalformed marks responses that were expected to be JSON but
	// did not parse.
	ErrorTypeMalformed ErrorType = "malformed_response"
	// ErrorTypeAuth marks credential failures (bad or missing API key).
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeUnknown marks everything else.
	ErrorTypeUnknown ErrorType = "unknown"
)

// Error is a structured provider error with classification.
type Error struct {
	Type       ErrorType
	Message    string
	Retryable  bool
	Cause      error
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	parts = append(parts, string(e.Type))
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
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

// IsRetryable implements the retry.RetryableError interface.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewError creates a new structured provider error.
func NewError(errType ErrorType, message string, retryable bool, cause error) *Error {
	return &Error{
		Type:      errType,
		Message:   message,
		Retryable: retryable,
		Cause:     cause,
	}
}

// ClassifyError categorizes an error from the provider SDK into a structured
// Error. Classification is string-based because the OpenAI-compatible surface
// of the provider does not expose stable error codes for every failure.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)

	statusCode := 0
	for _, code := range []int{400, 401, 403, 404, 429, 500, 502, 503, 504} {
		if strings.Contains(errStr, fmt.Sprintf("%d", code)) {
			statusCode = code
			break
		}
	}

	if strings.Contains(errStr, "401") || strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "invalid api key") || strings.Contains(lower, "api key not valid") {
		e := NewError(ErrorTypeAuth, "authentication failed", false, err)
		e.StatusCode = statusCode
		return e
	}

	if strings.Contains(lower, "safety") || strings.Contains(lower, "content_filter") ||
		strings.Contains(lower, "blocked") {
		e := NewError(ErrorTypeBlocked, "content blocked by safety filter", false, err)
		e.StatusCode = statusCode
		return e
	}

	if strings.Contains(errStr, "429") || strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "resource exhausted") {
		e := NewError(ErrorTypeUnavailable, "rate limited", true, err)
		e.StatusCode = statusCode
		return e
	}

	if strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded") ||
		strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") {
		e := NewError(ErrorTypeUnavailable, "provider unreachable", true, err)
		e.StatusCode = statusCode
		return e
	}

	if strings.Contains(errStr, "500") || strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") || strings.Contains(errStr, "504") {
		e := NewError(ErrorTypeUnavailable, "server error", true, err)
		e.StatusCode = statusCode
		return e
	}

	e := NewError(ErrorTypeUnknown, "provider error", false, err)
	e.StatusCode = statusCode
	return e
}

// GetErrorType extracts the ErrorType from an error.
func GetErrorType(err error) ErrorType {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type
	}
	return ErrorTypeUnknown
}
