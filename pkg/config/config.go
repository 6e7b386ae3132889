package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"httpretry/pkg/ratelimit"
	"httpretry/pkg/retry"
)

// Config holds all configuration options for the retrying HTTP client.
// Durations are expressed in milliseconds for easy YAML/env decoding.
type Config struct {
	// Retry policy applied to every request
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// RetryConfig holds the retry policy section
type RetryConfig struct {
	MaxRetries     int             `yaml:"max_retries" json:"max_retries"`
	InitialDelayMs int             `yaml:"initial_delay_ms" json:"initial_delay_ms"`
	Factor         float64         `yaml:"factor" json:"factor"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
}

// RateLimitConfig holds the rate limit branch of the retry policy
type RateLimitConfig struct {
	MaxRetries int                    `yaml:"max_retries" json:"max_retries"`
	MaxDelayMs int                    `yaml:"max_delay_ms" json:"max_delay_ms"`
	Headers    []ratelimit.HeaderSpec `yaml:"headers" json:"headers"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Retry: RetryConfig{
			MaxRetries:     3,
			InitialDelayMs: 1000,
			Factor:         2.0,
			RateLimit: RateLimitConfig{
				MaxRetries: 10,
				MaxDelayMs: 60000,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load builds a configuration from defaults, an optional YAML file, and
// environment variable overrides, in that order of precedence. A .env file in
// the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	// Missing .env is fine, real environment still applies.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".httpretry.yaml",
		".httpretry.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "httpretry", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "httpretry", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// LoadFromEnv loads configuration overrides from environment variables
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("HTTPRETRY_MAX_RETRIES"); v != "" {
		var val int
		fmt.Sscanf(v, "%d", &val)
		if val >= 0 {
			c.Retry.MaxRetries = val
		}
	}
	if v := os.Getenv("HTTPRETRY_INITIAL_DELAY_MS"); v != "" {
		var val int
		fmt.Sscanf(v, "%d", &val)
		if val > 0 {
			c.Retry.InitialDelayMs = val
		}
	}
	if v := os.Getenv("HTTPRETRY_FACTOR"); v != "" {
		var val float64
		fmt.Sscanf(v, "%f", &val)
		if val > 1 {
			c.Retry.Factor = val
		}
	}
	if v := os.Getenv("HTTPRETRY_RATE_LIMIT_MAX_RETRIES"); v != "" {
		var val int
		fmt.Sscanf(v, "%d", &val)
		if val >= 0 {
			c.Retry.RateLimit.MaxRetries = val
		}
	}
	if v := os.Getenv("HTTPRETRY_RATE_LIMIT_MAX_DELAY_MS"); v != "" {
		var val int
		fmt.Sscanf(v, "%d", &val)
		if val > 0 {
			c.Retry.RateLimit.MaxDelayMs = val
		}
	}
	if v := os.Getenv("HTTPRETRY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Retry.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}
	if c.Retry.InitialDelayMs < 0 {
		errs = append(errs, errors.New("initial delay cannot be negative"))
	}
	if c.Retry.Factor <= 1 {
		errs = append(errs, errors.New("factor must be greater than 1"))
	}
	if c.Retry.RateLimit.MaxRetries < 0 {
		errs = append(errs, errors.New("rate limit max retries cannot be negative"))
	}
	if c.Retry.RateLimit.MaxDelayMs <= 0 {
		errs = append(errs, errors.New("rate limit max delay must be positive"))
	}
	for _, spec := range c.Retry.RateLimit.Headers {
		if spec.Header == "" {
			errs = append(errs, errors.New("rate limit header name cannot be empty"))
		}
		switch spec.Kind {
		case ratelimit.KindWaitSeconds, ratelimit.KindResetEpochSeconds:
		default:
			errs = append(errs, fmt.Errorf("unknown rate limit header kind: %q", spec.Kind))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ToRetryConfig converts the policy section into the engine's retry.Config
func (c *Config) ToRetryConfig() *retry.Config {
	return &retry.Config{
		MaxRetries:   c.Retry.MaxRetries,
		InitialDelay: time.Duration(c.Retry.InitialDelayMs) * time.Millisecond,
		Factor:       c.Retry.Factor,
		RateLimit: retry.RateLimitConfig{
			MaxRetries: c.Retry.RateLimit.MaxRetries,
			MaxDelay:   time.Duration(c.Retry.RateLimit.MaxDelayMs) * time.Millisecond,
			Headers:    c.Retry.RateLimit.Headers,
		},
	}
}
