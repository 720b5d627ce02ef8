package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flaggedError struct {
	retryable bool
}

func (e *flaggedError) Error() string     { return "flagged" }
func (e *flaggedError) IsRetryable() bool { return e.retryable }

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(&flaggedError{retryable: true}))
	assert.False(t, IsRetryable(&flaggedError{retryable: false}))
	assert.True(t, IsRetryable(errors.New("dial tcp: connection refused")))
	assert.True(t, IsRetryable(errors.New("HTTP 429 Too Many Requests")))
	assert.False(t, IsRetryable(errors.New("invalid argument")))
}

func fastConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoIfRetryable_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := DoIfRetryable(context.Background(), fastConfig(), func() error {
		attempts++
		if attempts < 3 {
			return &flaggedError{retryable: true}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoIfRetryable_PermanentErrorReturnsImmediately(t *testing.T) {
	attempts := 0
	permanent := &flaggedError{retryable: false}
	err := DoIfRetryable(context.Background(), fastConfig(), func() error {
		attempts++
		return permanent
	})

	assert.Equal(t, permanent, err)
	assert.Equal(t, 1, attempts)
}

func TestDoIfRetryable_ExhaustsRetries(t *testing.T) {
	attempts := 0
	err := DoIfRetryable(context.Background(), fastConfig(), func() error {
		attempts++
		return &flaggedError{retryable: true}
	})

	require.Error(t, err)
	assert.Equal(t, 4, attempts) // initial call + 3 retries
}

func TestDoIfRetryable_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := fastConfig()
	cfg.InitialDelay = time.Second

	errCh := make(chan error, 1)
	go func() {
		errCh <- DoIfRetryable(ctx, cfg, func() error {
			return &flaggedError{retryable: true}
		})
	}()

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("retry loop did not observe cancellation")
	}
}
