package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeNetwork        ErrorType = "network"
	ErrorTypeTimeout        ErrorType = "timeout"
	ErrorTypeRateLimit      ErrorType = "rate_limit"
	ErrorTypeServerError    ErrorType = "server_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	ErrorTypeCancelled      ErrorType = "cancelled"
	ErrorTypeUnknown        ErrorType = "unknown"
)

// Error represents a request error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, so callers can match it with errors.Is
func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error type should be retried
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeTimeout, ErrorTypeRateLimit, ErrorTypeServerError:
		return true
	case ErrorTypeInvalidRequest, ErrorTypeCancelled:
		return false
	default:
		return false
	}
}

// IsRetryableStatusCode checks if an HTTP status code indicates a retryable response
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 408: // Request Timeout
		return true
	case 425: // Too Early
		return true
	case 429: // Too Many Requests
		return true
	case 500, 502, 503, 504: // Server errors
		return true
	default:
		return false
	}
}

// ClassifyNetwork maps a transport error to its error type
func ClassifyNetwork(err error) ErrorType {
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return ErrorTypeTimeout
	}
	if IsTransientNetwork(err) {
		return ErrorTypeNetwork
	}
	return ErrorTypeUnknown
}

// IsTransientNetwork reports whether err is a transient network failure worth
// retrying: timeouts, DNS failures, and the usual connection-level errnos.
// Context cancellation and deadline errors are never transient.
func IsTransientNetwork(err error) bool {
	if err == nil {
		return false
	}

	// Cancellation is surfaced by the caller, never retried here.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Timeouts from the net stack (dial, read, TLS handshake) or url.Error wrappers.
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.ETIMEDOUT)
}
