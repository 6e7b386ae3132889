package retry

import (
	"context"
	"math"
	"time"
)

// ExponentialBackoff computes the delay before an error path retry
type ExponentialBackoff struct {
	// InitialDelay is the base delay duration
	InitialDelay time.Duration
	// Factor is the exponential base by which delay grows
	Factor float64
}

// Delay returns the delay for the given error retry count, counted from 1.
// The first retry waits InitialDelay*Factor, the second InitialDelay*Factor^2,
// and so on. The delay is deliberately uncapped and jitter-free: replaying the
// same outcome sequence always yields the same delays, and only the rate limit
// path carries an upper bound.
func (b ExponentialBackoff) Delay(retry int) time.Duration {
	if retry <= 0 {
		return 0
	}
	return time.Duration(float64(b.InitialDelay) * math.Pow(b.Factor, float64(retry)))
}

// Wait suspends for the given delay or until ctx is cancelled, whichever comes
// first. It returns ctx.Err() when cancellation cut the wait short, and always
// releases its timer before returning. A zero or negative delay returns
// immediately.
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
