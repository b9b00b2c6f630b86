package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      2 * time.Millisecond,
		BackoffFactor: 2,
	}
}

func TestDoWithLog_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	var logged []int

	err := DoWithLog(context.Background(), fastConfig(5), "redis", func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}, func(attempt int, err error, nextDelay time.Duration) {
		logged = append(logged, attempt)
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, logged)
}

func TestDoWithLog_ReturnsLastErrorWhenExhausted(t *testing.T) {
	sentinel := errors.New("still down")

	err := DoWithLog(context.Background(), fastConfig(2), "redis", func() error {
		return sentinel
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "max retry attempts (2)")
}

func TestDoWithLog_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := DoWithLog(ctx, fastConfig(3), "redis", func() error {
		calls++
		return nil
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}
