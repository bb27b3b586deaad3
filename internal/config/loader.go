package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "SCOUT"

// newViper builds a pre-configured Viper instance: YAML file type, SCOUT_
// env prefix, automatic env binding, and a key replacer that maps "." to
// "_" so nested keys like "upstream.api_key" resolve to
// SCOUT_UPSTREAM_API_KEY.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads the YAML file at configPath, merges any SCOUT_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from SCOUT_* environment variables,
// with no config file required. Preferred for containerised deployments.
//
// Naming convention:
//
//	SCOUT_<SECTION>_<FIELD>   e.g.  SCOUT_SERVER_PORT, SCOUT_UPSTREAM_API_KEY
func LoadFromEnv() (*Config, error) {
	v := newViper()
	bindEnvKeys(v)
	return unmarshalAndFinalize(v)
}

// bindEnvKeys declares every config key so AutomaticEnv can see it even
// when no config file supplies the key. Viper only consults the
// environment for keys it knows about.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.host", "server.read_timeout", "server.write_timeout",
		"server.idle_timeout", "server.max_body_size", "server.shutdown_timeout",
		"server.rate_limit_rps", "server.rate_limit_burst",
		"server.cors_allowed_origins",
		"upstream.base_url", "upstream.api_key", "upstream.request_timeout", "upstream.max_limit",
		"demo.enabled", "demo.fixture_path",
		"extractor.lexicon_path",
		"query.default_max_results",
		"log.level", "log.format", "log.output_paths",
		"metrics.enabled", "metrics.namespace",
		"metrics.enable_process_metrics", "metrics.enable_go_metrics",
	} {
		_ = v.BindEnv(key)
	}
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the
// newly parsed Config whenever the file changes on disk. Intended for
// hot-reloading non-critical settings such as log level; callers apply
// only the safe subset at runtime.
//
// Watch is non-blocking; viper manages the background goroutine. A change
// that fails to parse or validate does not invoke onChange.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}
