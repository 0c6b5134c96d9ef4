// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration for transcript retrieval.
type Config struct {
	// HTTPTimeout is the maximum time for a single HTTP request.
	HTTPTimeout time.Duration `json:"http_timeout"`
	// UserAgent is sent on outbound requests.
	UserAgent string `json:"user_agent"`
	// RequestsPerSecond paces outbound requests (0 = unpaced).
	RequestsPerSecond float64 `json:"requests_per_second"`

	// MaxAttempts is the total number of fetch attempts, including the first.
	MaxAttempts int `json:"max_attempts"`
	// BaseBackoff is the backoff unit between attempts.
	BaseBackoff time.Duration `json:"base_backoff"`
	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration `json:"max_backoff"`

	// APIKey enables the YouTube Data API catalog backend when set.
	APIKey string `json:"api_key"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTPTimeout:       30 * time.Second,
		UserAgent:         "yttranscript/1.0",
		RequestsPerSecond: 2.5,
		MaxAttempts:       3,
		BaseBackoff:       1 * time.Second,
		MaxBackoff:        30 * time.Second,
	}
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Config file is optional.
	if err := cfg.loadFromFile(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from yttranscript.json in the current
// directory or the user config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"yttranscript.json",
		filepath.Join(os.Getenv("HOME"), ".config", "yttranscript", "yttranscript.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTTX_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTPTimeout = d
		}
	}
	if v := os.Getenv("YTTX_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("YTTX_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("YTTX_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxAttempts = n
		}
	}
	if v := os.Getenv("YTTX_BASE_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.BaseBackoff = d
		}
	}
	if v := os.Getenv("YTTX_MAX_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxBackoff = d
		}
	}
	if v := os.Getenv("YTTX_API_KEY"); v != "" {
		c.APIKey = v
	}
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be non-negative")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}
	if c.BaseBackoff <= 0 {
		return fmt.Errorf("base_backoff must be positive")
	}
	if c.MaxBackoff <= 0 {
		return fmt.Errorf("max_backoff must be positive")
	}
	if c.MaxBackoff < c.BaseBackoff {
		return fmt.Errorf("max_backoff must be >= base_backoff")
	}
	return nil
}
