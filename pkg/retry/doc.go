// Package retry holds the retry policy and backoff primitives used by the
// HTTP request engine.
//
// A Config carries two independent budgets: MaxRetries for transient network
// errors and generic retryable statuses, and RateLimit.MaxRetries for
// responses that carry an explicit rate limit signal. The error path backs
// off exponentially from InitialDelay with no upper bound; the rate limit
// path follows the server-directed delay, capped at RateLimit.MaxDelay.
//
// Basic usage:
//
//	cfg := retry.DefaultConfig()
//	cfg.MaxRetries = 5
//	cfg.InitialDelay = 500 * time.Millisecond
//
//	backoff := retry.ExponentialBackoff{
//		InitialDelay: cfg.InitialDelay,
//		Factor:       cfg.Factor,
//	}
//	delay := backoff.Delay(2) // second error retry
//	if err := retry.Wait(ctx, delay); err != nil {
//		// ctx cancelled during the wait
//	}
//
// Wait is the single suspension primitive between attempts: it resolves after
// the delay elapses or as soon as the context is cancelled, and never leaks
// its timer on either path.
package retry
