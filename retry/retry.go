// Package retry provides bounded-attempt retry with exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Config holds retry configuration.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the backoff unit: attempt n waits BaseDelay * 2^(n-1)
	// plus a random jitter in [0, BaseDelay).
	BaseDelay time.Duration
	// MaxDelay caps the computed delay for any single wait.
	MaxDelay time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// ErrorClassifier reports whether an error is transient and worth retrying.
type ErrorClassifier func(error) bool

// IsRetryable is the default classifier. Context errors are never retried;
// everything else is.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// ExhaustedError reports that all attempts failed with a transient error.
// Use errors.As() to recover the attempt count:
//
//	var ex *retry.ExhaustedError
//	if errors.As(err, &ex) {
//		fmt.Printf("gave up after %d attempts: %v\n", ex.Attempts, ex.Err)
//	}
type ExhaustedError struct {
	// Attempts is the number of attempts made.
	Attempts int
	// Err is the error from the final attempt.
	Err error
}

// Error returns a string representation of the exhaustion error.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry: %d attempts exhausted: %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ExhaustedError) Unwrap() error { return e.Err }

// Do executes fn up to cfg.MaxAttempts times, sleeping between attempts with
// exponential backoff and jitter. Errors the classifier marks non-transient
// propagate immediately and unwrapped. When all attempts fail, Do returns an
// *ExhaustedError carrying the attempt count and the last underlying error.
func Do(ctx context.Context, cfg Config, classifier ErrorClassifier, fn func(context.Context) error) error {
	if classifier == nil {
		classifier = IsRetryable
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !classifier(err) {
			// Permanent error, don't retry.
			return err
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-time.After(Backoff(cfg, attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return &ExhaustedError{Attempts: cfg.MaxAttempts, Err: lastErr}
}

// Backoff returns the delay to wait after the given 1-based attempt:
// BaseDelay * 2^(attempt-1) plus jitter in [0, BaseDelay), capped at MaxDelay.
func Backoff(cfg Config, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := cfg.BaseDelay << (attempt - 1)
	if cfg.BaseDelay > 0 {
		delay += time.Duration(rand.Int63n(int64(cfg.BaseDelay)))
	}
	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return delay
}
