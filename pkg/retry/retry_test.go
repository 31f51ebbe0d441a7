package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Immediate(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("timeout")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("transport down")
	calls := 0

	err := Do(context.Background(), Immediate(3), func() error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	fatal := errors.New("missing credential")
	cfg := Immediate(3)
	cfg.Retryable = func(err error) bool { return !errors.Is(err, fatal) }
	calls := 0

	err := Do(context.Background(), cfg, func() error {
		calls++
		return fatal
	})

	assert.Equal(t, fatal, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0

	err := Do(ctx, Immediate(3), func() error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestDoWithLog_ReportsRetriedAttempts(t *testing.T) {
	var logged []int
	cfg := Config{MaxAttempts: 3, InitialDelay: time.Millisecond, BackoffFactor: 2, MaxDelay: 5 * time.Millisecond}

	err := DoWithLog(context.Background(), cfg, "generator", func() error {
		return errors.New("boom")
	}, func(attempt int, err error, nextDelay time.Duration) {
		logged = append(logged, attempt)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator: max retry attempts (3) exceeded")
	assert.Equal(t, []int{1, 2}, logged)
}
