// Package config provides configuration types and defaults for campus.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Config holds all configuration options for campus.
type Config struct {
	DebugLog string        `mapstructure:"debug_log" yaml:"debug_log"`
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn or error
	UI       UIConfig      `mapstructure:"ui" yaml:"ui"`
	Theme    ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Cache    CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Tracing  TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	Markdown      bool   `mapstructure:"markdown" yaml:"markdown"`             // Render lists through glamour
	MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"` // "dark" (default), "light" or "auto"
	Mouse         bool   `mapstructure:"mouse" yaml:"mouse"`                   // Enable mouse clicks in pickers
}

// ThemeConfig holds hex colors for the UI. Empty values keep the built-in color.
type ThemeConfig struct {
	Highlight  string `mapstructure:"highlight" yaml:"highlight"`
	Success    string `mapstructure:"success" yaml:"success"`
	Error      string `mapstructure:"error" yaml:"error"`
	Info       string `mapstructure:"info" yaml:"info"`
	Student    string `mapstructure:"student" yaml:"student"`
	Instructor string `mapstructure:"instructor" yaml:"instructor"`
	Course     string `mapstructure:"course" yaml:"course"`
	Department string `mapstructure:"department" yaml:"department"`
}

// Colors returns the non-empty theme colors keyed by their config name.
func (t ThemeConfig) Colors() map[string]string {
	all := map[string]string{
		"highlight":  t.Highlight,
		"success":    t.Success,
		"error":      t.Error,
		"info":       t.Info,
		"student":    t.Student,
		"instructor": t.Instructor,
		"course":     t.Course,
		"department": t.Department,
	}
	out := make(map[string]string, len(all))
	for k, v := range all {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// CacheConfig controls the projection cache.
type CacheConfig struct {
	// TTL is how long a rendered list stays cached. Entries are keyed by
	// registry revision and flushed on every change, so the TTL only bounds
	// memory. Zero disables the cache.
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/campus/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// DefaultTracesFilePath returns ~/.config/campus/traces/traces.jsonl, or ""
// when the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "campus", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		LogLevel: "debug",
		UI: UIConfig{
			Markdown:      false,
			MarkdownStyle: "dark",
			Mouse:         true,
		},
		Cache: CacheConfig{
			TTL: 10 * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks every section of the configuration.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light", "auto":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\", \"light\", or \"auto\", got %q", ui.MarkdownStyle)
	}
}

// ValidateTheme checks that every configured color is a hex color.
func ValidateTheme(theme ThemeConfig) error {
	for name, value := range theme.Colors() {
		if !hexColor.MatchString(value) {
			return fmt.Errorf("theme.%s must be a hex color like \"#7D56F4\", got %q", name, value)
		}
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
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Path requirements only matter once tracing is on.
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}
