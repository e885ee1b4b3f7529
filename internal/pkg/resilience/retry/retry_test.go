package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast(opts ...Option) Retry {
	return New(append([]Option{WithDelay(time.Millisecond), WithMaxDelay(2 * time.Millisecond)}, opts...)...)
}

func TestExecute(t *testing.T) {
	t.Run("successful operation runs once", func(t *testing.T) {
		calls := 0

		err := fast().Execute(t.Context(), func() error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0

		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			calls++
			if calls < 2 {
				return errors.New("redis: connection refused")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("returns the last error when attempts run out", func(t *testing.T) {
		calls := 0
		publishErr := errors.New("publish failed")

		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			calls++
			return publishErr
		})

		assert.ErrorIs(t, err, publishErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("combines every error when asked to", func(t *testing.T) {
		calls := 0

		err := fast(WithAttempts(2), WithLastErrorOnly(false)).Execute(t.Context(), func() error {
			calls++
			return errors.New("attempt failed")
		})

		require.Error(t, err)
		assert.Equal(t, 2, calls)
		assert.Contains(t, err.Error(), "#1")
		assert.Contains(t, err.Error(), "#2")
	})

	t.Run("permanent errors stop at once", func(t *testing.T) {
		calls := 0
		encodeErr := errors.New("cannot encode event")

		err := fast(WithAttempts(5)).Execute(t.Context(), func() error {
			calls++
			return Permanent(encodeErr)
		})

		assert.ErrorIs(t, err, encodeErr)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		calls := 0

		err := New(WithAttempts(5), WithDelay(time.Second)).Execute(ctx, func() error {
			calls++
			cancel()
			return errors.New("temporary")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}

func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r, ok := New().(*retrier)
		require.True(t, ok)

		assert.Equal(t, uint(3), r.cfg.attempts)
		assert.Equal(t, time.Second, r.cfg.delay)
		assert.Equal(t, 5*time.Second, r.cfg.maxDelay)
		assert.True(t, r.cfg.lastErrOnly)
	})

	t.Run("custom", func(t *testing.T) {
		r, ok := New(WithAttempts(5), WithDelay(200*time.Millisecond), WithMaxDelay(2*time.Second)).(*retrier)
		require.True(t, ok)

		assert.Equal(t, uint(5), r.cfg.attempts)
		assert.Equal(t, 200*time.Millisecond, r.cfg.delay)
		assert.Equal(t, 2*time.Second, r.cfg.maxDelay)
	})
}
