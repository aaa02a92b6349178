// Package config loads and validates the Zyte API routing configuration via
// Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/paxaxel223/zyteroute/internal/params"
)

// Platform default header values. Headers carrying exactly these values are
// dropped silently by the automap instead of warning, because they were not
// a caller decision. This library injects no identifying agent of its own,
// so the harmless default for User-Agent is the empty string.
const (
	DefaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	DefaultAcceptLanguage = "en"
	DefaultUserAgent      = ""
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Zyte    ZyteConfig    `mapstructure:"zyte"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ZyteConfig governs API routing and parameter derivation.
type ZyteConfig struct {
	APIKey             string            `mapstructure:"api_key"`
	APIURL             string            `mapstructure:"api_url"`
	RouteAll           bool              `mapstructure:"route_all"`
	Automap            bool              `mapstructure:"automap"`
	DefaultParams      map[string]any    `mapstructure:"default_params"`
	UnsupportedHeaders []string          `mapstructure:"unsupported_headers"`
	BrowserHeaders     map[string]string `mapstructure:"browser_headers"`
	JobID              string            `mapstructure:"job_id"`
}

// HTTPConfig configures API client retry behavior.
type HTTPConfig struct {
	TimeoutSeconds   int `mapstructure:"timeout_seconds"`
	MaxRetries       int `mapstructure:"max_retries"`
	BackoffInitialMs int `mapstructure:"backoff_initial_ms"`
	BackoffMaxMs     int `mapstructure:"backoff_max_ms"`
}

// CrawlerConfig holds settings for the fallback fetch path.
type CrawlerConfig struct {
	UserAgent string `mapstructure:"user_agent"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ZYTE_API")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("zyte.api_url", "https://api.zyte.com/v1/extract")
	v.SetDefault("zyte.route_all", false)
	v.SetDefault("zyte.automap", true)
	v.SetDefault("zyte.unsupported_headers", []string{"Cookie", "User-Agent"})
	v.SetDefault("zyte.browser_headers", map[string]string{"Referer": "referer"})
	v.SetDefault("http.timeout_seconds", 60)
	v.SetDefault("http.max_retries", 2)
	v.SetDefault("http.backoff_initial_ms", 250)
	v.SetDefault("http.backoff_max_ms", 5000)
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Zyte.APIURL == "" {
		return fmt.Errorf("zyte.api_url must be set")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must be >= 0")
	}
	return nil
}

// Timeout converts the HTTP timeout config into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Defaults produces the immutable parameter-engine inputs. Header names are
// lower-cased here so the engine can do literal lookups.
func (c Config) Defaults() params.Defaults {
	unsupported := make(map[string]struct{}, len(c.Zyte.UnsupportedHeaders))
	for _, name := range c.Zyte.UnsupportedHeaders {
		unsupported[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	browser := make(map[string]string, len(c.Zyte.BrowserHeaders))
	for name, field := range c.Zyte.BrowserHeaders {
		browser[strings.ToLower(strings.TrimSpace(name))] = field
	}
	return params.Defaults{
		RouteAllByDefault:  c.Zyte.RouteAll,
		AutomapByDefault:   c.Zyte.Automap,
		DefaultParams:      c.Zyte.DefaultParams,
		UnsupportedHeaders: unsupported,
		BrowserHeaders:     browser,
		HarmlessHeaderDefaults: map[string]string{
			"accept":          DefaultAccept,
			"accept-language": DefaultAcceptLanguage,
			"user-agent":      DefaultUserAgent,
		},
		JobID: c.Zyte.JobID,
	}
}
