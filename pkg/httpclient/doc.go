// Package httpclient layers a retry decision engine over a single outbound
// HTTP request.
//
// Given a URL and request options, a Client repeatedly issues the request
// until it succeeds, exhausts a retry budget, or is cancelled. Two budgets
// are tracked independently per call: the error budget covers transient
// network failures and generic retryable statuses (408, 425, 429, 500, 502,
// 503, 504) with uncapped exponential backoff, while the rate limit budget
// covers 429/503 responses that carry a parseable delay header (Retry-After,
// X-RateLimit-Reset, or caller-supplied specs) with the server-directed
// delay capped at a configurable maximum.
//
// Basic usage:
//
//	resp, err := httpclient.Request(ctx, "https://api.example.com/items", nil, nil)
//
//	// Reusable client with a custom policy and retry observation
//	cfg := retry.DefaultConfig()
//	cfg.MaxRetries = 5
//	client := httpclient.NewClient(cfg, logger.GetLogger())
//	resp, err := client.Do(ctx, url, &httpclient.RequestOptions{
//		Method:  http.MethodPost,
//		Body:    payload,
//		Timeout: 30 * time.Second,
//		OnRetry: func(e httpclient.RetryEvent) {
//			fmt.Printf("attempt %d failed, waiting %s\n", e.Attempt, e.Delay)
//		},
//	})
//
// Retry-worthiness is about transport and status classification, not HTTP
// semantics of success: a 400 response is returned to the caller as a normal
// result, and so is a 503 once its budget runs out. Only transport errors
// and cancellation surface as errors.
//
// Cancellation is cooperative. The caller's context and the per-request
// Timeout compose; whichever fires first aborts the in-flight attempt or the
// pending wait, and the terminal error keeps the two sources apart: a
// deadline yields an ErrorTypeTimeout error, an explicit cancellation yields
// an ErrorTypeCancelled error wrapping the context's cause.
package httpclient
