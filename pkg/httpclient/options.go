package httpclient

import "time"

// RequestOptions carries the transport-level parameters for a request.
// All fields are optional; the zero value issues a GET with no body.
type RequestOptions struct {
	// Method is the HTTP method, defaulting to GET
	Method string
	// Headers are set on every attempt, overriding the client's defaults
	Headers map[string]string
	// Body is re-sent verbatim on every attempt
	Body []byte
	// Timeout bounds the whole call including retries and waits. It composes
	// with the caller's context: whichever fires first cancels the call.
	Timeout time.Duration
	// OnRetry, if set, is invoked synchronously once per retry decision,
	// before the wait preceding the next attempt
	OnRetry func(RetryEvent)
}

// RetryEvent is the snapshot delivered to OnRetry for each retry decision
type RetryEvent struct {
	// Attempt is the 1-based number of the attempt that triggered the retry
	Attempt int
	// StatusCode is the response status, zero when the attempt failed
	// before a response arrived
	StatusCode int
	// Err is the transport error, nil when a response was received
	Err error
	// Delay is the wait before the next attempt
	Delay time.Duration
	// RateLimitRetry is true when the retry consumes the rate limit budget
	// rather than the error budget
	RateLimitRetry bool
}
