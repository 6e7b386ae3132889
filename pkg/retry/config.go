package retry

import (
	"time"

	"httpretry/pkg/ratelimit"
)

// Config holds retry configuration for a request
type Config struct {
	// MaxRetries is the error retry budget, shared by transient network
	// errors and generic retryable statuses
	MaxRetries int
	// InitialDelay is the delay before the first error retry
	InitialDelay time.Duration
	// Factor is the exponential base applied on each subsequent error retry
	Factor float64
	// RateLimit configures the independent rate limit retry budget
	RateLimit RateLimitConfig
}

// RateLimitConfig holds the rate limit branch of the retry policy
type RateLimitConfig struct {
	// MaxRetries is the rate limit retry budget, tracked separately from
	// the error retry budget
	MaxRetries int
	// MaxDelay caps a server-directed delay
	MaxDelay time.Duration
	// Headers are caller-supplied header specs consulted after the built-in
	// Retry-After and X-RateLimit-Reset, in the order given
	Headers []ratelimit.HeaderSpec
}

// DefaultConfig returns a retry configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		Factor:       2.0,
		RateLimit: RateLimitConfig{
			MaxRetries: 10,
			MaxDelay:   60 * time.Second,
		},
	}
}

// Normalized returns a copy of c with unset fields filled from the defaults.
// A nil receiver yields the full default configuration. MaxRetries values are
// taken literally, so an explicit zero disables that budget.
func (c *Config) Normalized() Config {
	if c == nil {
		return *DefaultConfig()
	}

	out := *c
	if out.MaxRetries < 0 {
		out.MaxRetries = 0
	}
	if out.InitialDelay <= 0 {
		out.InitialDelay = 1 * time.Second
	}
	if out.Factor <= 1 {
		out.Factor = 2.0
	}
	if out.RateLimit.MaxRetries < 0 {
		out.RateLimit.MaxRetries = 0
	}
	if out.RateLimit.MaxDelay <= 0 {
		out.RateLimit.MaxDelay = 60 * time.Second
	}
	return out
}

// HeaderSpecs returns the resolver order for this configuration: the built-in
// specs followed by any caller-supplied ones.
func (c *Config) HeaderSpecs() []ratelimit.HeaderSpec {
	specs := ratelimit.DefaultSpecs()
	if c != nil {
		specs = append(specs, c.RateLimit.Headers...)
	}
	return specs
}
