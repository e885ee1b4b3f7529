// Package retry runs operations that may fail temporarily, such as
// publishing a notification to the message bus, with exponential backoff.
// It wraps avast/retry-go behind a small interface so callers can swap in a
// no-op or test implementation.
//
//	r := retry.New(retry.WithAttempts(5), retry.WithDelay(200*time.Millisecond))
//	err := r.Execute(ctx, func() error {
//	    return publisher.Publish(ctx, event)
//	})
package retry

import (
	"context"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes an operation until it succeeds, the attempts run out, the
// error is marked Permanent, or ctx is done.
type Retry interface {
	Execute(ctx context.Context, operation func() error) error
}

type config struct {
	attempts    uint
	delay       time.Duration
	maxDelay    time.Duration
	lastErrOnly bool
}

// Option configures a Retry built by New.
type Option func(*config)

type retrier struct {
	cfg config
}

// Compile-time assertion that retrier implements Retry interface
var _ Retry = (*retrier)(nil)

// New returns a Retry with exponential backoff. Defaults are 3 attempts, a
// 1s base delay capped at 5s, and only the last error returned.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// Permanent marks err so that Execute stops retrying and returns it at once.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return retry.Unrecoverable(err)
}

// Execute implements Retry. Every failed attempt that will be retried is
// logged at warn level with its attempt number.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	return retry.Do(
		operation,
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn(ctx, "operation failed, retrying",
				"retry.attempt", attempt+1,
				"retry.max_attempts", r.cfg.attempts,
				"error", err,
			)
		}),
	)
}

// WithAttempts sets the total number of attempts, the first one included.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base backoff delay.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly controls whether Execute returns only the final error
// or every attempt's error combined.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
