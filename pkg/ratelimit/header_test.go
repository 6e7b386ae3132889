package ratelimit

import (
	"net/http"
	"testing"
	"time"
)

func TestEligible(t *testing.T) {
	tests := []struct {
		status   int
		eligible bool
	}{
		{429, true},
		{503, true},
		{200, false},
		{500, false},
		{502, false},
		{504, false},
	}

	for _, test := range tests {
		if got := Eligible(test.status); got != test.eligible {
			t.Errorf("Eligible(%d) = %v, want %v", test.status, got, test.eligible)
		}
	}
}

func TestResolveWaitSeconds(t *testing.T) {
	headers := http.Header{}
	headers.Set("Retry-After", "7")

	delay, ok := Resolve(DefaultSpecs(), headers, time.Now())
	if !ok {
		t.Fatal("expected a resolved delay")
	}
	if delay != 7*time.Second {
		t.Errorf("expected 7s, got %v", delay)
	}
}

func TestResolveResetEpoch(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	t.Run("future reset", func(t *testing.T) {
		headers := http.Header{}
		headers.Set("X-RateLimit-Reset", "1700000030")

		delay, ok := Resolve(DefaultSpecs(), headers, now)
		if !ok {
			t.Fatal("expected a resolved delay")
		}
		if delay != 30*time.Second {
			t.Errorf("expected 30s, got %v", delay)
		}
	})

	t.Run("past reset yields non-positive delay", func(t *testing.T) {
		headers := http.Header{}
		headers.Set("X-RateLimit-Reset", "1699999990")

		delay, ok := Resolve(DefaultSpecs(), headers, now)
		if !ok {
			t.Fatal("expected a resolved delay")
		}
		if delay != -10*time.Second {
			t.Errorf("expected -10s, got %v", delay)
		}
	})
}

func TestResolvePriorityOrder(t *testing.T) {
	// Retry-After outranks X-RateLimit-Reset, which outranks custom specs.
	headers := http.Header{}
	headers.Set("Retry-After", "5")
	headers.Set("X-RateLimit-Reset", "1700000099")
	headers.Set("X-Custom-Wait", "60")

	specs := append(DefaultSpecs(), HeaderSpec{Header: "X-Custom-Wait", Kind: KindWaitSeconds})

	delay, ok := Resolve(specs, headers, time.Unix(1_700_000_000, 0))
	if !ok {
		t.Fatal("expected a resolved delay")
	}
	if delay != 5*time.Second {
		t.Errorf("expected Retry-After to win with 5s, got %v", delay)
	}
}

func TestResolveSkipsUnparseable(t *testing.T) {
	// An unparseable value falls through to the next spec in order.
	headers := http.Header{}
	headers.Set("Retry-After", "Wed, 21 Oct 2015 07:28:00 GMT")
	headers.Set("X-RateLimit-Reset", "1700000010")

	delay, ok := Resolve(DefaultSpecs(), headers, time.Unix(1_700_000_000, 0))
	if !ok {
		t.Fatal("expected fallthrough to X-RateLimit-Reset")
	}
	if delay != 10*time.Second {
		t.Errorf("expected 10s, got %v", delay)
	}
}

func TestResolveCustomSpecOnly(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-Shopify-Retry", "3")

	specs := append(DefaultSpecs(), HeaderSpec{Header: "X-Shopify-Retry", Kind: KindWaitSeconds})

	delay, ok := Resolve(specs, headers, time.Now())
	if !ok {
		t.Fatal("expected a resolved delay")
	}
	if delay != 3*time.Second {
		t.Errorf("expected 3s, got %v", delay)
	}
}

func TestResolveNoMatch(t *testing.T) {
	tests := []struct {
		name    string
		headers http.Header
	}{
		{"no headers", http.Header{}},
		{"unparseable only", http.Header{"Retry-After": []string{"soon"}}},
		{"unrelated header", http.Header{"X-Request-Id": []string{"42"}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, ok := Resolve(DefaultSpecs(), test.headers, time.Now()); ok {
				t.Error("expected no resolved delay")
			}
		})
	}
}
