package config

import (
	"fmt"
	"time"

	"github.com/proxycast/claude-provider/logger"
)

// Config is the complete engine configuration.
type Config struct {
	Base          BaseConfig          `yaml:"base" mapstructure:"base"`
	Logger        logger.Config       `yaml:"logger" mapstructure:"logger"`
	HTTP          HTTPConfig          `yaml:"http" mapstructure:"http"`
	Refresh       RefreshConfig       `yaml:"refresh" mapstructure:"refresh"`
	Bedrock       BedrockConfig       `yaml:"bedrock" mapstructure:"bedrock"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// BaseConfig identifies the service instance.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// HTTPConfig bounds outbound request timing.
type HTTPConfig struct {
	// ConnectTimeout bounds connection establishment for validation probes.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`
	// Timeout bounds whole validation requests.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// FlowConnectTimeout bounds connection establishment for OAuth flows.
	FlowConnectTimeout time.Duration `yaml:"flow_connect_timeout" mapstructure:"flow_connect_timeout"`
	// FlowTimeout bounds whole OAuth flow requests.
	FlowTimeout time.Duration `yaml:"flow_timeout" mapstructure:"flow_timeout"`
}

// RefreshConfig tunes token refresh behavior.
type RefreshConfig struct {
	// MaxAttempts caps refresh retries, backoff doubling per attempt.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// BedrockConfig holds AWS defaults.
type BedrockConfig struct {
	// DefaultRegion is used when a credential does not name one.
	DefaultRegion string `yaml:"default_region" mapstructure:"default_region"`
}

// ServerConfig configures the optional HTTP serving mode.
type ServerConfig struct {
	// Addr is the listen address for serve --http.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// ObservabilityConfig configures tracing and metrics export.
type ObservabilityConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP collector endpoint.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// SampleRate is the trace sampling ratio in [0, 1].
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// ApplyDefaults fills in zero-valued settings.
func (c *Config) ApplyDefaults() {
	if c.Base.Name == "" {
		c.Base.Name = "claude-provider"
	}
	if c.Base.Environment == "" {
		c.Base.Environment = "development"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "console"
	}
	if c.Logger.Output == "" {
		c.Logger.Output = "stderr"
	}
	if c.HTTP.ConnectTimeout == 0 {
		c.HTTP.ConnectTimeout = 10 * time.Second
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 30 * time.Second
	}
	if c.HTTP.FlowConnectTimeout == 0 {
		c.HTTP.FlowConnectTimeout = 30 * time.Second
	}
	if c.HTTP.FlowTimeout == 0 {
		c.HTTP.FlowTimeout = 60 * time.Second
	}
	if c.Refresh.MaxAttempts == 0 {
		c.Refresh.MaxAttempts = 3
	}
	if c.Bedrock.DefaultRegion == "" {
		c.Bedrock.DefaultRegion = "us-east-1"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Observability.SampleRate == 0 {
		c.Observability.SampleRate = 1.0
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[c.Base.Environment] {
		return fmt.Errorf("base.environment must be one of [development, staging, production] (got: %s)", c.Base.Environment)
	}
	if c.HTTP.ConnectTimeout > c.HTTP.Timeout {
		return fmt.Errorf("http.connect_timeout (%v) exceeds http.timeout (%v)", c.HTTP.ConnectTimeout, c.HTTP.Timeout)
	}
	if c.HTTP.FlowConnectTimeout > c.HTTP.FlowTimeout {
		return fmt.Errorf("http.flow_connect_timeout (%v) exceeds http.flow_timeout (%v)", c.HTTP.FlowConnectTimeout, c.HTTP.FlowTimeout)
	}
	if c.Refresh.MaxAttempts < 1 {
		return fmt.Errorf("refresh.max_attempts must be at least 1 (got: %d)", c.Refresh.MaxAttempts)
	}
	if c.Observability.SampleRate < 0 || c.Observability.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be in [0, 1] (got: %v)", c.Observability.SampleRate)
	}
	if c.Observability.Enabled && c.Observability.Endpoint == "" {
		return fmt.Errorf("observability.endpoint is required when observability is enabled")
	}
	return nil
}
