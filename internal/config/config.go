// Package config defines all configuration structures for MateriaScout.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimitRPS    int           `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst"`

	// CORSAllowedOrigins lists origins allowed to call the API from a
	// browser; ["*"] allows any. Empty disables CORS headers entirely.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// UpstreamConfig holds Materials Project API connection parameters.
type UpstreamConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxLimit       int           `mapstructure:"max_limit"`
}

// DemoConfig controls the offline demo store.
type DemoConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	FixturePath string `mapstructure:"fixture_path"`
}

// ExtractorConfig holds element-extraction tunables.
type ExtractorConfig struct {
	// LexiconPath optionally points at a YAML file of extra element-name
	// to symbol mappings merged over the built-in lexicon.
	LexiconPath string `mapstructure:"lexicon_path"`
}

// QueryConfig holds query pipeline tunables.
type QueryConfig struct {
	DefaultMaxResults int `mapstructure:"default_max_results"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	Namespace            string `mapstructure:"namespace"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
}

// Config is the root configuration structure for the service. Every
// component reads its settings from the relevant sub-struct.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Demo      DemoConfig      `mapstructure:"demo"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	Query     QueryConfig     `mapstructure:"query"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error
// as fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("config: server.rate_limit_rps must be >= 0, got %d", c.Server.RateLimitRPS)
	}

	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("config: upstream.base_url is required")
	}
	if c.Upstream.MaxLimit < 1 {
		return fmt.Errorf("config: upstream.max_limit must be >= 1, got %d", c.Upstream.MaxLimit)
	}
	if c.Demo.Enabled && c.Demo.FixturePath == "" {
		return fmt.Errorf("config: demo.fixture_path is required when demo mode is enabled")
	}

	if c.Query.DefaultMaxResults < 1 {
		return fmt.Errorf("config: query.default_max_results must be >= 1, got %d", c.Query.DefaultMaxResults)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	return nil
}
