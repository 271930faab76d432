// Package config provides configuration types and defaults for dimens.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dimens/internal/log"
	"dimens/internal/tracing"
)

// Config holds all configuration options for dimens.
type Config struct {
	Display DisplayConfig `mapstructure:"display"`
	Search  SearchConfig  `mapstructure:"search"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// DisplayConfig holds output rendering options.
type DisplayConfig struct {
	// Form selects the textual form of dimensions and units.
	// Valid values: "symbol" (default) or "name"
	Form string `mapstructure:"form"`

	// Color enables styled terminal output.
	Color bool `mapstructure:"color"`
}

// SearchConfig bounds the exhaustive equivalents search.
type SearchConfig struct {
	// MaxComposingDims caps how many dimensions may appear in one
	// equivalent composition. Default: 5
	MaxComposingDims int `mapstructure:"max_composing_dims"`

	// MaxExp is the exclusive bound on the absolute value of any
	// exponent in a composition. Default: 3
	MaxExp int `mapstructure:"max_exp"`

	// MaxCombinations caps how many dimension combinations the search
	// examines. 0 means exhaustive. Default: 0
	MaxCombinations int `mapstructure:"max_combinations"`
}

// CacheConfig holds search-result cache options.
type CacheConfig struct {
	// Enabled controls whether equivalents results are memoised.
	// Default: true
	Enabled bool `mapstructure:"enabled"`

	// TTL is how long a cached result stays valid. Default: 30m
	TTL time.Duration `mapstructure:"ttl"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/dimens/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Provider converts the section into the tracing package's config,
// filling in the default trace file path when the file exporter is
// selected without one.
func (t TracingConfig) Provider() tracing.Config {
	filePath := t.FilePath
	if filePath == "" {
		filePath = DefaultTracesFilePath()
	}
	return tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	}
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/dimens/traces/traces.jsonl or empty string if home
// dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dimens", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Display: DisplayConfig{
			Form:  "symbol",
			Color: true,
		},
		Search: SearchConfig{
			MaxComposingDims: 5,
			MaxExp:           3,
			MaxCombinations:  0,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// ValidateDisplay checks display configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateDisplay(display DisplayConfig) error {
	switch display.Form {
	case "", "symbol", "name":
		return nil
	default:
		return fmt.Errorf("display.form must be \"symbol\" or \"name\", got %q", display.Form)
	}
}

// ValidateSearch checks search configuration for errors.
// Returns nil if the configuration is valid (zero values use defaults).
func ValidateSearch(search SearchConfig) error {
	if search.MaxComposingDims < 0 {
		return fmt.Errorf("search.max_composing_dims must not be negative, got %d", search.MaxComposingDims)
	}
	if search.MaxExp < 0 {
		return fmt.Errorf("search.max_exp must not be negative, got %d", search.MaxExp)
	}
	if search.MaxCombinations < 0 {
		return fmt.Errorf("search.max_combinations must not be negative, got %d", search.MaxCombinations)
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
func ValidateCache(cache CacheConfig) error {
	if cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", cache.TTL)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate endpoint requirements when tracing is enabled. The
	// file exporter falls back to the default trace path.
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateDisplay(cfg.Display); err != nil {
		return err
	}
	if err := ValidateSearch(cfg.Search); err != nil {
		return err
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Dimens Configuration

# Output settings
display:
  form: symbol   # Textual form for dimensions and units: "symbol" (default) or "name"
  color: true    # Styled terminal output

# Equivalents search bounds
search:
  max_composing_dims: 5  # Max dimensions per equivalent composition
  max_exp: 3             # Exclusive bound on any exponent's absolute value
  max_combinations: 0    # Cap on examined combinations (0 = exhaustive)

# Search-result cache
cache:
  enabled: true
  ttl: 30m

# Distributed tracing configuration
# Enables visibility into search and conversion flows
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/dimens/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1  # Sample 10% of traces
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

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
