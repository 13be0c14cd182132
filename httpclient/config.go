package httpclient

import (
	"fmt"
	"time"

	"github.com/proxycast/claude-provider/resilience"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultConnectTimeout = 10 * time.Second
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the total request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// ConnectTimeout bounds connection establishment. Defaults to 10s.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`

	// DisableRedirects suppresses automatic redirect following. When set the
	// client returns the redirect response itself so callers can read the
	// Location header. Redirects are followed by default.
	DisableRedirects bool `yaml:"disable_redirects" mapstructure:"disable_redirects"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.ConnectTimeout > c.Timeout {
		return fmt.Errorf("httpclient: connect timeout exceeds total timeout")
	}
	return nil
}

// DefaultRetryConfig returns a default retry config suitable for HTTP clients.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}
