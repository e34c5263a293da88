package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Veraticus/streamcheck/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("connection reset")

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry(t *testing.T) {
	tests := []struct {
		failWith     error
		wantIs       error
		name         string
		failures     int
		attempts     int
		wantCalls    int
		wantNilError bool
	}{
		{
			name:         "succeeds first time",
			attempts:     3,
			wantCalls:    1,
			wantNilError: true,
		},
		{
			name:         "retryable error then success",
			failWith:     &RetryableError{Err: errFlaky, Retryable: true},
			failures:     2,
			attempts:     3,
			wantCalls:    3,
			wantNilError: true,
		},
		{
			name:      "retryable error exhausts attempts",
			failWith:  &RetryableError{Err: errFlaky, Retryable: true},
			failures:  10,
			attempts:  3,
			wantCalls: 3,
			wantIs:    ErrMaxRetries,
		},
		{
			name:      "non retryable error stops immediately",
			failWith:  errFlaky,
			failures:  10,
			attempts:  3,
			wantCalls: 1,
			wantIs:    errFlaky,
		},
		{
			name:      "single attempt returns underlying error",
			failWith:  &RetryableError{Err: errFlaky, Retryable: true},
			failures:  10,
			attempts:  1,
			wantCalls: 1,
			wantIs:    errFlaky,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			}, fastRetry(tt.attempts))

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantNilError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantIs)
		})
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := fastRetry(5)
	opts.InitialDelay = time.Second

	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return &RetryableError{Err: errFlaky, Retryable: true}
	}, opts)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errFlaky, Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errFlaky, Retryable: false}))
	assert.False(t, IsRetryable(errFlaky))
	assert.False(t, IsRetryable(context.Canceled))
}

func TestUserError(t *testing.T) {
	err := NewUserError("Keine Verbindung", errFlaky)

	assert.Equal(t, "Keine Verbindung: connection reset", err.Error())
	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, "Keine Verbindung", UserMessage(err))
	assert.Equal(t, "connection reset", UserMessage(errFlaky))
	assert.Empty(t, UserMessage(nil))
}

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	require.NoError(t, SetupLogger(&buf, level, "json"))

	LogDebug("fetched suggestions", Fields{"query": "Bay"})
	assert.Contains(t, buf.String(), `"query":"Bay"`)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, SetupLogger(&buf, level, "xml"), ErrInvalidConfig)
}
