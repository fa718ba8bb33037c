package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(retries int) *Config {
	return &Config{
		MaxRetries:    retries,
		BackoffFactor: 2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	}
}

func TestRetrier_Do(t *testing.T) {
	errTemp := errors.New("temporary")
	errFatal := errors.New("fatal")

	tests := []struct {
		name      string
		retries   int
		failures  int
		failWith  error
		wantErr   error
		wantCalls int
	}{
		{name: "first try", retries: 3, failures: 0, wantCalls: 1},
		{name: "succeeds after two failures", retries: 3, failures: 2, failWith: errTemp, wantCalls: 3},
		{name: "retries exhausted", retries: 2, failures: 10, failWith: errTemp, wantErr: errTemp, wantCalls: 3},
		{name: "zero retries", retries: 0, failures: 10, failWith: errTemp, wantErr: errTemp, wantCalls: 1},
		{name: "permanent stops at once", retries: 5, failures: 10, failWith: Permanent(errFatal), wantErr: errFatal, wantCalls: 1},
		{
			name:      "wrapped permanent is found",
			retries:   5,
			failures:  10,
			failWith:  fmt.Errorf("send: %w", Permanent(errFatal)),
			wantErr:   errFatal,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := NewRetrier(fastConfig(tt.retries)).Do(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRetrier_ContextCancelled(t *testing.T) {
	cfg := fastConfig(10)
	cfg.InitialDelay = time.Second
	cfg.MaxDelay = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	calls := 0
	start := time.Now()
	err := NewRetrier(cfg).Do(ctx, func() error {
		calls++
		return errors.New("keeps failing")
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestPermanent_Nil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}

func TestNewDefaultRetrier(t *testing.T) {
	r := NewDefaultRetrier()
	assert.Equal(t, 3, r.config.MaxRetries)
	assert.Equal(t, 5*time.Second, r.config.MaxDelay)
}
