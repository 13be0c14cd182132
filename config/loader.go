package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces the engine's environment variables.
const envPrefix = "CLAUDE_PROVIDER"

// LoaderOption customizes Load behavior.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// Load builds a Config from config files, .env files, and environment
// variables, then applies defaults and validates. Missing files are not
// errors; environment variables use the CLAUDE_PROVIDER_ prefix with
// underscores for nesting (CLAUDE_PROVIDER_LOGGER_LEVEL).
func Load(opts ...LoaderOption) (*Config, error) {
	var lc loaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if envFile := resolveFile(lc.envFile, []string{".env"}); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load .env file %s: %v\n", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindKnownKeys(v)

	if configFile := resolveFile(lc.configFile, []string{"./config.yml", "./config/config.yml"}); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveFile returns the explicit path if set, otherwise the first search
// candidate that exists.
func resolveFile(explicit string, searchPaths []string) string {
	if explicit != "" {
		return explicit
	}
	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// bindKnownKeys registers every config key with viper so AutomaticEnv can
// resolve it even when no config file supplies the key.
func bindKnownKeys(v *viper.Viper) {
	keys := []string{
		"base.name", "base.environment", "base.version", "base.debug",
		"logger.level", "logger.format", "logger.output", "logger.no_color", "logger.timestamp",
		"http.connect_timeout", "http.timeout", "http.flow_connect_timeout", "http.flow_timeout",
		"refresh.max_attempts",
		"bedrock.default_region",
		"server.addr",
		"observability.enabled", "observability.endpoint", "observability.sample_rate",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
