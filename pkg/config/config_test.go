package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpretry/pkg/ratelimit"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, 1000, cfg.Retry.InitialDelayMs)
	assert.Equal(t, 2.0, cfg.Retry.Factor)
	assert.Equal(t, 10, cfg.Retry.RateLimit.MaxRetries)
	assert.Equal(t, 60000, cfg.Retry.RateLimit.MaxDelayMs)
	assert.Empty(t, cfg.Retry.RateLimit.Headers)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	content := `
retry:
  max_retries: 5
  initial_delay_ms: 250
  factor: 1.5
  rate_limit:
    max_retries: 4
    max_delay_ms: 30000
    headers:
      - header: X-Api-Wait
        kind: wait-seconds
      - header: X-Api-Reset
        kind: reset-epoch-seconds
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.Equal(t, 250, cfg.Retry.InitialDelayMs)
	assert.Equal(t, 1.5, cfg.Retry.Factor)
	assert.Equal(t, 4, cfg.Retry.RateLimit.MaxRetries)
	assert.Equal(t, 30000, cfg.Retry.RateLimit.MaxDelayMs)
	assert.Equal(t, "debug", cfg.Logging.Level)

	require.Len(t, cfg.Retry.RateLimit.Headers, 2)
	assert.Equal(t, "X-Api-Wait", cfg.Retry.RateLimit.Headers[0].Header)
	assert.Equal(t, ratelimit.KindWaitSeconds, cfg.Retry.RateLimit.Headers[0].Kind)
	assert.Equal(t, ratelimit.KindResetEpochSeconds, cfg.Retry.RateLimit.Headers[1].Kind)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retry: [not a map"), 0644))

	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile(path))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTPRETRY_MAX_RETRIES", "7")
	t.Setenv("HTTPRETRY_INITIAL_DELAY_MS", "500")
	t.Setenv("HTTPRETRY_FACTOR", "3.5")
	t.Setenv("HTTPRETRY_RATE_LIMIT_MAX_RETRIES", "2")
	t.Setenv("HTTPRETRY_RATE_LIMIT_MAX_DELAY_MS", "15000")
	t.Setenv("HTTPRETRY_LOG_LEVEL", "warn")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 7, cfg.Retry.MaxRetries)
	assert.Equal(t, 500, cfg.Retry.InitialDelayMs)
	assert.Equal(t, 3.5, cfg.Retry.Factor)
	assert.Equal(t, 2, cfg.Retry.RateLimit.MaxRetries)
	assert.Equal(t, 15000, cfg.Retry.RateLimit.MaxDelayMs)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"negative max retries", func(c *Config) { c.Retry.MaxRetries = -1 }, false},
		{"negative initial delay", func(c *Config) { c.Retry.InitialDelayMs = -100 }, false},
		{"factor of one", func(c *Config) { c.Retry.Factor = 1.0 }, false},
		{"negative rate limit retries", func(c *Config) { c.Retry.RateLimit.MaxRetries = -1 }, false},
		{"zero rate limit delay", func(c *Config) { c.Retry.RateLimit.MaxDelayMs = 0 }, false},
		{"empty header name", func(c *Config) {
			c.Retry.RateLimit.Headers = []ratelimit.HeaderSpec{{Header: "", Kind: ratelimit.KindWaitSeconds}}
		}, false},
		{"unknown header kind", func(c *Config) {
			c.Retry.RateLimit.Headers = []ratelimit.HeaderSpec{{Header: "X-Wait", Kind: "minutes"}}
		}, false},
		{"valid custom headers", func(c *Config) {
			c.Retry.RateLimit.Headers = []ratelimit.HeaderSpec{{Header: "X-Wait", Kind: ratelimit.KindWaitSeconds}}
		}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.mutate(cfg)

			err := cfg.Validate()
			if test.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestToRetryConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Retry.MaxRetries = 5
	cfg.Retry.InitialDelayMs = 250
	cfg.Retry.RateLimit.MaxDelayMs = 30000
	cfg.Retry.RateLimit.Headers = []ratelimit.HeaderSpec{
		{Header: "X-Api-Wait", Kind: ratelimit.KindWaitSeconds},
	}

	rc := cfg.ToRetryConfig()

	assert.Equal(t, 5, rc.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, rc.InitialDelay)
	assert.Equal(t, 2.0, rc.Factor)
	assert.Equal(t, 10, rc.RateLimit.MaxRetries)
	assert.Equal(t, 30*time.Second, rc.RateLimit.MaxDelay)
	require.Len(t, rc.RateLimit.Headers, 1)
	assert.Equal(t, "X-Api-Wait", rc.RateLimit.Headers[0].Header)
}
