package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Base.Name != "claude-provider" {
		t.Errorf("Base.Name = %q", cfg.Base.Name)
	}
	if cfg.HTTP.Timeout != 30*time.Second || cfg.HTTP.ConnectTimeout != 10*time.Second {
		t.Errorf("validation timeouts = %v/%v", cfg.HTTP.ConnectTimeout, cfg.HTTP.Timeout)
	}
	if cfg.HTTP.FlowTimeout != 60*time.Second || cfg.HTTP.FlowConnectTimeout != 30*time.Second {
		t.Errorf("flow timeouts = %v/%v", cfg.HTTP.FlowConnectTimeout, cfg.HTTP.FlowTimeout)
	}
	if cfg.Refresh.MaxAttempts != 3 {
		t.Errorf("Refresh.MaxAttempts = %d", cfg.Refresh.MaxAttempts)
	}
	if cfg.Bedrock.DefaultRegion != "us-east-1" {
		t.Errorf("Bedrock.DefaultRegion = %q", cfg.Bedrock.DefaultRegion)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
base:
  name: test-engine
  environment: production
logger:
  level: debug
refresh:
  max_attempts: 5
bedrock:
  default_region: eu-west-1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Base.Name != "test-engine" || cfg.Base.Environment != "production" {
		t.Errorf("Base = %+v", cfg.Base)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("Logger.Level = %q", cfg.Logger.Level)
	}
	if cfg.Refresh.MaxAttempts != 5 {
		t.Errorf("Refresh.MaxAttempts = %d", cfg.Refresh.MaxAttempts)
	}
	if cfg.Bedrock.DefaultRegion != "eu-west-1" {
		t.Errorf("Bedrock.DefaultRegion = %q", cfg.Bedrock.DefaultRegion)
	}
	// Unset keys still default.
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("HTTP.Timeout = %v", cfg.HTTP.Timeout)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CLAUDE_PROVIDER_LOGGER_LEVEL", "warn")
	t.Setenv("CLAUDE_PROVIDER_BEDROCK_DEFAULT_REGION", "ap-southeast-2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logger.Level != "warn" {
		t.Errorf("Logger.Level = %q, want warn", cfg.Logger.Level)
	}
	if cfg.Bedrock.DefaultRegion != "ap-southeast-2" {
		t.Errorf("Bedrock.DefaultRegion = %q", cfg.Bedrock.DefaultRegion)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CLAUDE_PROVIDER_REFRESH_MAX_ATTEMPTS=7\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("CLAUDE_PROVIDER_REFRESH_MAX_ATTEMPTS") })

	cfg, err := Load(WithEnvFile(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Refresh.MaxAttempts != 7 {
		t.Errorf("Refresh.MaxAttempts = %d, want 7", cfg.Refresh.MaxAttempts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"bad environment", func(c *Config) { c.Base.Environment = "testing" }, true},
		{"connect exceeds total", func(c *Config) { c.HTTP.ConnectTimeout = time.Minute }, true},
		{"zero attempts", func(c *Config) { c.Refresh.MaxAttempts = -1 }, true},
		{"sample rate out of range", func(c *Config) { c.Observability.SampleRate = 1.5 }, true},
		{"enabled without endpoint", func(c *Config) { c.Observability.Enabled = true }, true},
		{"enabled with endpoint", func(c *Config) {
			c.Observability.Enabled = true
			c.Observability.Endpoint = "localhost:4318"
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
