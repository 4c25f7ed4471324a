// Package config loads and validates monitor configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	WatchList WatchListConfig `mapstructure:"watchlist"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// WebhookConfig holds the Discord webhook endpoint.
type WebhookConfig struct {
	URL string `mapstructure:"url"`
}

// MonitorConfig governs the scheduling loop.
type MonitorConfig struct {
	IntervalMinutes int    `mapstructure:"interval_minutes"`
	PollMillis      int    `mapstructure:"poll_millis"`
	Timezone        string `mapstructure:"timezone"`
}

// WatchListConfig sets the path of the watch-list document.
type WatchListConfig struct {
	Path string `mapstructure:"path"`
}

// HTTPConfig configures outbound HTTP behavior.
type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

// FetchConfig selects the schedule-page fetcher implementation.
type FetchConfig struct {
	Headless      bool `mapstructure:"headless"`
	NavTimeoutSec int  `mapstructure:"nav_timeout_seconds"`
}

// ServerConfig controls the ops HTTP listener.
type ServerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// LoggingConfig sets verbosity and zap development features.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PATHE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The original deployment exported DISCORD_WEBHOOK_URL, TIMEZONE and
	// LOG_LEVEL without a prefix; keep honoring those names.
	if err := v.BindEnv("webhook.url", "PATHE_WEBHOOK_URL", "DISCORD_WEBHOOK_URL"); err != nil {
		return Config{}, fmt.Errorf("bind webhook env: %w", err)
	}
	if err := v.BindEnv("monitor.timezone", "PATHE_MONITOR_TIMEZONE", "TIMEZONE"); err != nil {
		return Config{}, fmt.Errorf("bind timezone env: %w", err)
	}
	if err := v.BindEnv("logging.level", "PATHE_LOGGING_LEVEL", "LOG_LEVEL"); err != nil {
		return Config{}, fmt.Errorf("bind log level env: %w", err)
	}

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
	v.SetDefault("monitor.interval_minutes", 30)
	v.SetDefault("monitor.poll_millis", 500)
	v.SetDefault("monitor.timezone", "Europe/Amsterdam")
	v.SetDefault("watchlist.path", "config.json")
	v.SetDefault("http.timeout_seconds", 15)
	v.SetDefault("http.user_agent", "pathe-monitor/1.0")
	v.SetDefault("fetch.headless", false)
	v.SetDefault("fetch.nav_timeout_seconds", 25)
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Webhook.URL == "" {
		return fmt.Errorf("webhook.url must be set (DISCORD_WEBHOOK_URL)")
	}
	if c.Monitor.IntervalMinutes <= 0 {
		return fmt.Errorf("monitor.interval_minutes must be > 0")
	}
	if c.Monitor.PollMillis <= 0 {
		return fmt.Errorf("monitor.poll_millis must be > 0")
	}
	if c.WatchList.Path == "" {
		return fmt.Errorf("watchlist.path must be set")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.Server.Enabled && c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0 when the ops server is enabled")
	}
	return nil
}

// Interval returns the tick cadence as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.Monitor.IntervalMinutes) * time.Minute
}

// Poll returns the shutdown-readiness poll granularity.
func (c Config) Poll() time.Duration {
	return time.Duration(c.Monitor.PollMillis) * time.Millisecond
}

// HTTPTimeout returns the outbound request timeout.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
