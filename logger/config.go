package logger

// Config configures logger behavior.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`
	// Format is the output format: "json" or "console".
	Format string `yaml:"format" mapstructure:"format"`
	// Output selects the destination: "stderr" (default) or "stdout".
	Output string `yaml:"output" mapstructure:"output"`
	// NoColor disables color in console format.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
	// Timestamp enables timestamps on log lines.
	Timestamp bool `yaml:"timestamp" mapstructure:"timestamp"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}
