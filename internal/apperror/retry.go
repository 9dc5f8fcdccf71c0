package apperror

import (
	"context"
	"time"

	"NewsDesk/internal/clock"
)

// RetryPolicy bounds Retry. MaxRetries counts attempts after the first one.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy is used for full listing loads.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, BaseDelay: time.Second}

// Delay returns the wait before retry number attempt (zero based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(1<<attempt)
}

// Retryable reports whether a failure is worth repeating. Validation and
// permission failures will not fix themselves.
func Retryable(err error) bool {
	switch Classify(err) {
	case KindNetwork, KindAPI:
		return true
	}
	return false
}

// Retry runs op until it succeeds, fails with a non-retryable error, the
// policy is exhausted, or ctx ends. The last error is returned.
func Retry(ctx context.Context, clk clock.Clock, policy RetryPolicy, op func(context.Context) error) error {
	if clk == nil {
		clk = clock.Real()
	}

	var err error
	for attempt := 0; ; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if attempt >= policy.MaxRetries || !Retryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return err
		case <-clk.After(policy.Delay(attempt)):
		}
	}
}
