// Package retry provides bounded retry with exponential backoff for
// transient store-API failures. Both store adapters route every remote call
// through Do; the engine core never retries whole passes.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config bounds a retried operation.
type Config struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// InitialDelay is the first backoff interval.
	InitialDelay time.Duration
	// MaxDelay caps the growing interval. Zero uses the backoff default.
	MaxDelay time.Duration
}

// DefaultConfig matches the configured retry defaults (3 attempts, 1s base).
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Second,
	}
}

// Permanent marks err as non-retryable; Do returns it immediately.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op until it succeeds, returns a permanent error, exhausts
// cfg.MaxAttempts, or ctx is cancelled. BackOff instances are stateful, so a
// fresh one is built per call.
func Do(ctx context.Context, cfg Config, op func() error) error {
	if cfg.MaxAttempts <= 1 {
		return op()
	}

	bo := backoff.NewExponentialBackOff()
	if cfg.InitialDelay > 0 {
		bo.InitialInterval = cfg.InitialDelay
	}
	if cfg.MaxDelay > 0 {
		bo.MaxInterval = cfg.MaxDelay
	}
	bo.MaxElapsedTime = 0 // bounded by attempt count, not wall clock

	wrapped := backoff.WithContext(
		backoff.WithMaxRetries(bo, uint64(cfg.MaxAttempts-1)), ctx)
	return backoff.Retry(op, wrapped)
}
