package ratelimit

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ValueKind describes how a rate limit header encodes its delay
type ValueKind string

const (
	// KindWaitSeconds means the header carries a relative wait in whole seconds
	KindWaitSeconds ValueKind = "wait-seconds"
	// KindResetEpochSeconds means the header carries an absolute reset time
	// as seconds since the Unix epoch
	KindResetEpochSeconds ValueKind = "reset-epoch-seconds"
)

// HeaderSpec names a response header and the kind of value it carries
type HeaderSpec struct {
	Header string    `yaml:"header" json:"header"`
	Kind   ValueKind `yaml:"kind" json:"kind"`
}

// DefaultSpecs returns the built-in header specs, highest priority first
func DefaultSpecs() []HeaderSpec {
	return []HeaderSpec{
		{Header: "Retry-After", Kind: KindWaitSeconds},
		{Header: "X-RateLimit-Reset", Kind: KindResetEpochSeconds},
	}
}

// Eligible reports whether statusCode is one a server uses to signal rate
// limiting: 429 Too Many Requests or 503 Service Unavailable.
func Eligible(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode == http.StatusServiceUnavailable
}

// Resolve walks specs in order and returns the delay directed by the first
// header whose value parses as an integer. Headers that are absent or carry
// unparseable values are skipped. The returned delay may be zero or negative
// when a reset time is already past.
func Resolve(specs []HeaderSpec, headers http.Header, now time.Time) (time.Duration, bool) {
	for _, spec := range specs {
		value := headers.Get(spec.Header)
		if value == "" {
			continue
		}

		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			continue
		}

		switch spec.Kind {
		case KindWaitSeconds:
			return time.Duration(n) * time.Second, true
		case KindResetEpochSeconds:
			return time.Unix(n, 0).Sub(now), true
		}
	}

	return 0, false
}
