// Package retry provides a bounded-attempt combinator with optional
// exponential backoff. It is the single retry primitive in the engine:
// startup database connects, subdomain collision resolution, and the
// orchestrator's commit loop all go through it.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Config defines retry behavior. MaxAttempts is the total number of calls,
// not the number of retries: MaxAttempts=10 means fn runs at most 10 times.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	JitterFactor float64 // 0.0-1.0, +/- fraction of the delay
}

// DefaultConfig returns sensible defaults for transient infrastructure
// failures: 4 attempts starting at 100ms, doubling, capped at 5s, 10% jitter.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts:  4,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// Immediate returns a config that calls fn up to maxAttempts times with no
// delay between attempts. Used where the retried operation is a datastore
// probe and backing off buys nothing.
func Immediate(maxAttempts int) *Config {
	return &Config{MaxAttempts: maxAttempts}
}

// applyJitter spreads the delay by +/- jitterFactor to avoid thundering herd.
func applyJitter(delay time.Duration, jitterFactor float64) time.Duration {
	if jitterFactor <= 0 {
		return delay
	}
	jitter := float64(delay) * jitterFactor * (rand.Float64()*2 - 1)
	return time.Duration(float64(delay) + jitter)
}

// Do executes fn until it succeeds or MaxAttempts is reached. Returns nil on
// success, the last error otherwise. Context cancellation is respected while
// waiting between attempts.
func Do(ctx context.Context, cfg *Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult is Do for functions that return a value.
func DoWithResult[T any](ctx context.Context, cfg *Config, fn func() (T, error)) (T, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var result T
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		r, err := fn()
		if err == nil {
			return r, nil
		}

		lastErr = err
		result = r

		if p, ok := err.(interface{ IsRetryable() bool }); ok && !p.IsRetryable() {
			return result, err
		}

		if attempt < cfg.MaxAttempts && delay > 0 {
			select {
			case <-time.After(applyJitter(delay, cfg.JitterFactor)):
				delay = time.Duration(float64(delay) * cfg.Multiplier)
				if delay > cfg.MaxDelay {
					delay = cfg.MaxDelay
				}
			case <-ctx.Done():
				return result, ctx.Err()
			}
		}
	}

	return result, lastErr
}

// RetryableError is implemented by errors that declare their own
// retryability. Non-retryable errors short-circuit Do immediately.
type RetryableError interface {
	error
	IsRetryable() bool
}
