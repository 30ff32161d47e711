// Package config loads runtime configuration from viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/papapumpkin/steer/internal/scan"
	"github.com/papapumpkin/steer/internal/steering"
)

// DefaultCacheMaxAge is the cache.max_age default, shared with steer-mcp.
const DefaultCacheMaxAge = 10 * time.Minute

// CacheConfig controls the analysis cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Size    int           `mapstructure:"size"`
	MaxAge  time.Duration `mapstructure:"max_age"`
	// Path is the SQLite file backing the cache. Empty keeps it in memory.
	Path string `mapstructure:"path"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds all runtime configuration for a steer invocation.
// Values are populated from .steer.yaml, STEER_* env vars, and CLI flags.
type Config struct {
	MaxFileSize int64       `mapstructure:"max_file_size"`
	Ignore      []string    `mapstructure:"ignore"`
	RipgrepPath string      `mapstructure:"ripgrep_path"`
	UseRipgrep  bool        `mapstructure:"use_ripgrep"`
	Format      string      `mapstructure:"format"`
	Cache       CacheConfig `mapstructure:"cache"`
	Log         LogConfig   `mapstructure:"log"`
	Verbose     bool        `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. The result is
// validated.
func Load() (Config, error) {
	viper.SetDefault("max_file_size", scan.DefaultMaxFileSize)
	viper.SetDefault("ignore", []string{})
	viper.SetDefault("ripgrep_path", "rg")
	viper.SetDefault("use_ripgrep", true)
	viper.SetDefault("format", string(steering.Kiro))
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.size", 64)
	viper.SetDefault("cache.max_age", DefaultCacheMaxAge)
	viper.SetDefault("cache.path", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ErrInvalid indicates a configuration value outside its allowed range.
var ErrInvalid = errors.New("invalid configuration")

// Validate reports every out-of-range value at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.MaxFileSize < 0 {
		bad("max_file_size must not be negative, got %d", c.MaxFileSize)
	}
	if c.Cache.Size < 0 {
		bad("cache.size must not be negative, got %d", c.Cache.Size)
	}
	if c.Cache.MaxAge < 0 {
		bad("cache.max_age must not be negative, got %s", c.Cache.MaxAge)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		bad("log.format must be text or json, got %q", c.Log.Format)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		bad("log.level %q is not a level", c.Log.Level)
	}
	if _, err := steering.ParseFormat(c.Format); err != nil {
		bad("format: %v", err)
	}
	if err := c.IgnoreRules().Validate(); err != nil {
		bad("ignore: %v", err)
	}
	return errors.Join(errs...)
}

// IgnoreRules returns the default ignore set extended with the configured
// globs.
func (c Config) IgnoreRules() scan.IgnoreRules {
	return scan.DefaultIgnore().With(c.Ignore...)
}

// LogLevel is the effective level; Verbose forces debug.
func (c Config) LogLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.Log.Level
}
