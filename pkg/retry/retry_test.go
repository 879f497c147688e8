package retry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:     3,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffFactor:   2.0,
		MaxTotalTimeout: time.Second,
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("transient")
		}
		return nil
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		calls++
		return fmt.Errorf("permanent")
	}, nil)

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "max retry attempts (3) exceeded")
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, fastConfig(), "test", func() error {
		return fmt.Errorf("never succeeds")
	}, nil)

	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_LogsEachFailedAttempt(t *testing.T) {
	logged := 0
	_ = Do(context.Background(), fastConfig(), "test", func() error {
		return fmt.Errorf("nope")
	}, func(attempt int, err error, nextDelay time.Duration) {
		logged++
	})

	// the final attempt is not followed by a sleep, so it is not logged
	assert.Equal(t, 2, logged)
}
