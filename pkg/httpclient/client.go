package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	errs "httpretry/pkg/errors"
	"httpretry/pkg/logger"
	"httpretry/pkg/ratelimit"
	"httpretry/pkg/retry"
)

// Client issues HTTP requests with transparent retries
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	retry      retry.Config
	specs      []ratelimit.HeaderSpec
	logger     logger.Logger
	now        func() time.Time
}

// NewClient creates a new retrying HTTP client. A nil cfg uses the default
// retry policy; a nil log uses the package default logger.
func NewClient(cfg *retry.Config, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{},
		headers:    make(map[string]string),
		retry:      cfg.Normalized(),
		specs:      cfg.HeaderSpecs(),
		logger:     log,
		now:        time.Now,
	}
}

// SetHTTPClient replaces the underlying transport client
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// SetHeader sets a default header sent on every request
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetHeaders sets multiple default headers at once
func (c *Client) SetHeaders(headers map[string]string) {
	for key, value := range headers {
		c.headers[key] = value
	}
}

// retryState tracks the budgets consumed during one call. Each call owns its
// own state; nothing is shared across concurrent calls.
type retryState struct {
	attempt          int
	errorRetries     int
	rateLimitRetries int
}

// Do issues the request and retries it until it succeeds, a budget runs out,
// or ctx is cancelled. A response is returned as-is once its status is not
// retryable or its budget is exhausted, whatever the status code; only
// transport errors and cancellation surface as errors. The caller owns the
// returned response body.
func (c *Client) Do(ctx context.Context, url string, opts *RequestOptions) (*http.Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	backoff := retry.ExponentialBackoff{
		InitialDelay: c.retry.InitialDelay,
		Factor:       c.retry.Factor,
	}

	var state retryState

	for {
		state.attempt++

		resp, err := c.attempt(ctx, url, opts)
		if err != nil {
			// An attempt that failed because cancellation fired mid-call
			// surfaces the cancellation itself: no retry counted, no event.
			if ctx.Err() != nil {
				return nil, c.cancelled(ctx)
			}

			if !errs.IsTransientNetwork(err) || state.errorRetries >= c.retry.MaxRetries {
				return nil, wrapTransport(err)
			}

			state.errorRetries++
			delay := backoff.Delay(state.errorRetries)

			if perr := c.pause(ctx, opts, RetryEvent{
				Attempt: state.attempt,
				Err:     err,
				Delay:   delay,
			}); perr != nil {
				return nil, perr
			}
			continue
		}

		var rlDelay time.Duration
		var rlOK bool
		if ratelimit.Eligible(resp.StatusCode) {
			rlDelay, rlOK = ratelimit.Resolve(c.specs, resp.Header, c.now())
		}

		// The rate limit branch takes priority over the generic status branch
		// when both apply to the same response.
		rateLimitRetry := rlOK && state.rateLimitRetries < c.retry.RateLimit.MaxRetries
		statusRetry := errs.IsRetryableStatusCode(resp.StatusCode) && state.errorRetries < c.retry.MaxRetries

		if !rateLimitRetry && !statusRetry {
			return resp, nil
		}

		if ctx.Err() != nil {
			drain(resp)
			return nil, c.cancelled(ctx)
		}

		var delay time.Duration
		if rateLimitRetry {
			state.rateLimitRetries++
			if rlDelay > c.retry.RateLimit.MaxDelay {
				rlDelay = c.retry.RateLimit.MaxDelay
			}
			delay = rlDelay
		} else {
			state.errorRetries++
			delay = backoff.Delay(state.errorRetries)
		}

		statusCode := resp.StatusCode
		drain(resp)

		if perr := c.pause(ctx, opts, RetryEvent{
			Attempt:        state.attempt,
			StatusCode:     statusCode,
			Delay:          delay,
			RateLimitRetry: rateLimitRetry,
		}); perr != nil {
			return nil, perr
		}
	}
}

// attempt performs exactly one network call
func (c *Client) attempt(ctx context.Context, url string, opts *RequestOptions) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeInvalidRequest,
			Message: fmt.Sprintf("invalid request: %v", err),
			Err:     err,
		}
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.DebugWithFields("HTTP attempt failed", map[string]interface{}{
			"method":      method,
			"url":         url,
			"error":       err.Error(),
			"duration_ms": duration.Milliseconds(),
		})
		return nil, err
	}

	c.logger.DebugWithFields("HTTP attempt completed", map[string]interface{}{
		"method":      method,
		"url":         url,
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	})

	return resp, nil
}

// pause emits the retry event and waits out the delay. It returns the
// cancellation error when ctx fired before the wait finished.
func (c *Client) pause(ctx context.Context, opts *RequestOptions, event RetryEvent) error {
	if opts.OnRetry != nil {
		opts.OnRetry(event)
	}

	fields := map[string]interface{}{
		"attempt":    event.Attempt,
		"delay_ms":   event.Delay.Milliseconds(),
		"rate_limit": event.RateLimitRetry,
	}
	if event.Err != nil {
		fields["error"] = event.Err.Error()
	} else {
		fields["status_code"] = event.StatusCode
	}
	c.logger.WarnWithFields("retrying request", fields)

	if err := retry.Wait(ctx, event.Delay); err != nil {
		return c.cancelled(ctx)
	}
	return nil
}

// cancelled builds the terminal error for a fired context, keeping the
// deadline case distinguishable from an explicit cancellation cause
func (c *Client) cancelled(ctx context.Context) error {
	cause := context.Cause(ctx)
	if errors.Is(cause, context.DeadlineExceeded) {
		return &errs.Error{
			Type:    errs.ErrorTypeTimeout,
			Message: "request timed out",
			Err:     cause,
		}
	}
	return &errs.Error{
		Type:    errs.ErrorTypeCancelled,
		Message: "request cancelled",
		Err:     cause,
	}
}

// wrapTransport wraps a terminal transport error with its classification
func wrapTransport(err error) error {
	var reqErr *errs.Error
	if errors.As(err, &reqErr) {
		return err
	}
	return &errs.Error{
		Type:    errs.ClassifyNetwork(err),
		Message: fmt.Sprintf("request failed: %v", err),
		Err:     err,
	}
}

// drain discards and closes a response body that will not be returned, so
// the underlying connection can be reused
func drain(resp *http.Response) {
	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}

// Request issues a one-off request with the given retry configuration. It is
// shorthand for building a Client and calling Do.
func Request(ctx context.Context, url string, opts *RequestOptions, cfg *retry.Config) (*http.Response, error) {
	return NewClient(cfg, nil).Do(ctx, url, opts)
}
