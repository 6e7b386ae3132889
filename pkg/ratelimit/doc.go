// Package ratelimit resolves server-directed retry delays from rate limit
// response headers.
//
// Servers signal rate limiting in two common shapes: a relative wait in
// seconds (Retry-After) or an absolute reset time in epoch seconds
// (X-RateLimit-Reset). Both built-in headers are consulted first, followed by
// any caller-supplied specs, in declared order. The first header whose value
// parses as an integer determines the delay; later specs are not consulted.
//
// Basic usage:
//
//	specs := append(ratelimit.DefaultSpecs(), ratelimit.HeaderSpec{
//		Header: "X-Shopify-Retry",
//		Kind:   ratelimit.KindWaitSeconds,
//	})
//	if delay, ok := ratelimit.Resolve(specs, resp.Header, time.Now()); ok {
//		// back off for delay before the next attempt
//	}
//
// A reset time already in the past yields a zero or negative delay, which
// callers should treat as an immediate retry.
package ratelimit
