package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{"unauthorized", errors.New("401 Unauthorized"), ErrorTypeAuth, false},
		{"bad api key", errors.New("API key not valid. Please pass a valid API key."), ErrorTypeAuth, false},
		{"safety filter", errors.New("response blocked due to safety settings"), ErrorTypeBlocked, false},
		{"rate limit", errors.New("429 rate limit exceeded"), ErrorTypeUnavailable, true},
		{"timeout", errors.New("context deadline exceeded"), ErrorTypeUnavailable, true},
		{"server error", errors.New("unexpected status 503"), ErrorTypeUnavailable, true},
		{"unknown", errors.New("something odd"), ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := ClassifyError(tt.err)
			require.NotNil(t, classified)
			assert.Equal(t, tt.wantType, classified.Type)
			assert.Equal(t, tt.wantRetryable, classified.Retryable)
		})
	}
}

func TestClassifyError_PreservesStructuredError(t *testing.T) {
	original := NewError(ErrorTypeBlocked, "blocked", false, nil)
	wrapped := fmt.Errorf("call failed: %w", original)

	assert.Same(t, original, ClassifyError(wrapped))
}

func TestClassifyError_Nil(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))
}

func TestGetErrorType(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewError(ErrorTypeUnavailable, "down", true, nil))
	assert.Equal(t, ErrorTypeUnavailable, GetErrorType(err))
	assert.Equal(t, ErrorTypeUnknown, GetErrorType(errors.New("plain")))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewError(ErrorTypeUnknown, "wrapper", false, cause)
	assert.ErrorIs(t, err, cause)
}
