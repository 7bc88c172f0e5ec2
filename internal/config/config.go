// Package config provides configuration types and defaults for modelctl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/modelctl/internal/log"
	"github.com/zjrosen/modelctl/internal/tracing"
)

// DefaultRegistryFile is used when no registry path is configured.
const DefaultRegistryFile = "model_registry.json"

// Config holds all configuration options for modelctl.
type Config struct {
	Registry string          `mapstructure:"registry"`
	Debug    bool            `mapstructure:"debug"`
	LogFile  string          `mapstructure:"log_file"`
	LogLevel string          `mapstructure:"log_level"` // debug, info, warn or error
	SQLite   SQLiteConfig    `mapstructure:"sqlite"`
	Tracing  TracingConfig   `mapstructure:"tracing"`
	Flags    map[string]bool `mapstructure:"flags"`
}

// SQLiteConfig holds SQLite mirror settings.
type SQLiteConfig struct {
	// Path of the mirror database. Relative paths resolve against the
	// working directory.
	Path string `mapstructure:"path"`
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/modelctl/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Provider converts the config section into tracing settings.
func (t TracingConfig) Provider() tracing.Config {
	return tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     t.FilePath,
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	}
}

// DefaultTracesFilePath returns ~/.config/modelctl/traces/traces.jsonl, or ""
// if the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "modelctl", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Registry: DefaultRegistryFile,
		Debug:    false,
		LogFile:  "debug.log",
		LogLevel: "debug",
		SQLite: SQLiteConfig{
			Path: ".modelctl/models.db",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: map[string]bool{},
	}
}

// Validate checks every section of the config.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Registry) == "" {
		return fmt.Errorf("registry path cannot be empty")
	}
	if err := ValidateLogLevel(c.LogLevel); err != nil {
		return err
	}
	if err := ValidateSQLite(c.SQLite); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateLogLevel accepts an empty level (meaning debug) or a known level name.
func ValidateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", level)
	}
}

// ValidateSQLite checks the mirror settings.
func ValidateSQLite(s SQLiteConfig) error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("sqlite.path cannot be empty")
	}
	if info, err := os.Stat(s.Path); err == nil && info.IsDir() {
		return fmt.Errorf("sqlite.path %q is a directory", s.Path)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t TracingConfig) error {
	return t.Provider().Validate()
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# modelctl configuration

# Registry file. Files ending in .yaml or .yml are stored as YAML, anything
# else as JSON. Override with --registry or MODELCTL_REGISTRY.
registry: model_registry.json

# Debug logging
debug: false
log_file: debug.log
# log_level: debug   # debug (default), info, warn, error

# SQLite mirror used by 'modelctl db export' and 'modelctl db import'
sqlite:
  path: .modelctl/models.db

# Feature flags
# flags:
#   sqlite-mirror: true   # also refresh the SQLite mirror on every add/remove
#   strict-dates: true    # require full RFC 3339 timestamps on the command line

# Tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/modelctl/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. It refuses to overwrite an existing file.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	var probe map[string]any
	if err := yaml.Unmarshal([]byte(DefaultConfigTemplate()), &probe); err != nil {
		return fmt.Errorf("default config template is invalid: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
