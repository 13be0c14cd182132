// Package config loads engine configuration from YAML files and environment
// variables. Files are optional; every setting has a working default so the
// engine runs with no configuration at all.
package config
