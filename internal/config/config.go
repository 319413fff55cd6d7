// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, an optional .env file and the environment.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Store backends understood by the kvstore adapter.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Fallback modes for a missing or corrupt entry list.
const (
	FallbackEmpty  = "empty"
	FallbackSample = "sample"
)

// metricName is the Prometheus name and label name grammar without colons.
var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend picks the key-value persistence: memory, file, redis or sqlite.
	StoreBackend string `koanf:"store_backend"`
	// StorePath is the JSON document used by the file backend.
	StorePath string `koanf:"store_path"`
	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `koanf:"sqlite_path"`
	// RedisAddr, RedisDB and RedisPrefix configure the redis backend.
	RedisAddr   string `koanf:"redis_addr"`
	RedisDB     int    `koanf:"redis_db"`
	RedisPrefix string `koanf:"redis_prefix"`
	// StoreFallback decides what a missing or corrupt entry list loads as: empty or sample.
	StoreFallback string `koanf:"store_fallback"`

	// LoginDelayMS is the artificial delay of the mock authenticator.
	LoginDelayMS int `koanf:"login_delay_ms"`
	// MaxDrafts bounds the number of open entry form drafts. Zero means unbounded.
	MaxDrafts int `koanf:"max_drafts"`
	// FixedTopPerformer, when set, replaces the computed top performer label.
	FixedTopPerformer string `koanf:"fixed_top_performer"`

	// MetricsEnabled turns counter and histogram recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`
	// MetricsNamespace and MetricsSubsystem prefix every Prometheus series.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`
	// MetricsLabels are constant labels as comma-separated key=value pairs, e.g. "env=prod,region=eu".
	MetricsLabels string `koanf:"metrics_labels"`
	// MetricsRefreshMS is the period of the gauge updaters.
	MetricsRefreshMS int `koanf:"metrics_refresh_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		StoreBackend:  BackendFile,
		StorePath:     "data/edutrack.json",
		SQLitePath:    "data/edutrack.db",
		RedisAddr:     "localhost:6379",
		RedisDB:       0,
		RedisPrefix:   "edutrack:",
		StoreFallback: FallbackEmpty,
		LoginDelayMS:  1000,
		MaxDrafts:     1024,

		MetricsEnabled:   true,
		MetricsNamespace: "edutrack",
		MetricsSubsystem: "tracker",
		MetricsRefreshMS: 10000,
	}
}

// MetricsLabelSet returns MetricsLabels as a map. Call Validate first; malformed
// pairs are skipped.
func (c *Config) MetricsLabelSet() map[string]string {
	labels := make(map[string]string)
	for _, pair := range labelPairs(c.MetricsLabels) {
		key, value, ok := parseLabel(pair)
		if ok {
			labels[key] = value
		}
	}
	return labels
}

func labelPairs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func parseLabel(pair string) (string, string, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StoreBackend {
	case BackendMemory:
	case BackendFile:
		if c.StorePath == "" {
			return fmt.Errorf("%w: store_path must not be empty for the file backend", ErrInvalidConfig)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path must not be empty for the sqlite backend", ErrInvalidConfig)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis_addr must not be empty for the redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, c.StoreBackend)
	}
	switch c.StoreFallback {
	case FallbackEmpty, FallbackSample:
	default:
		return fmt.Errorf("%w: unknown store_fallback %q", ErrInvalidConfig, c.StoreFallback)
	}
	if c.LoginDelayMS < 0 {
		return fmt.Errorf("%w: login_delay_ms must not be negative", ErrInvalidConfig)
	}
	if c.MaxDrafts < 0 {
		return fmt.Errorf("%w: max_drafts must not be negative", ErrInvalidConfig)
	}
	if c.MetricsRefreshMS <= 0 {
		return fmt.Errorf("%w: metrics_refresh_ms must be positive", ErrInvalidConfig)
	}
	if !metricName.MatchString(c.MetricsNamespace) {
		return fmt.Errorf("%w: invalid metrics_namespace %q", ErrInvalidConfig, c.MetricsNamespace)
	}
	if c.MetricsSubsystem != "" && !metricName.MatchString(c.MetricsSubsystem) {
		return fmt.Errorf("%w: invalid metrics_subsystem %q", ErrInvalidConfig, c.MetricsSubsystem)
	}
	for _, pair := range labelPairs(c.MetricsLabels) {
		key, _, ok := parseLabel(pair)
		if !ok || !metricName.MatchString(key) || strings.HasPrefix(key, "__") {
			return fmt.Errorf("%w: metrics_labels entry %q must be key=value", ErrInvalidConfig, pair)
		}
	}
	return nil
}
