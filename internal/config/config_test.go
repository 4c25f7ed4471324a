package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithWebhookFromEnv(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/123/abc")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "https://discord.com/api/webhooks/123/abc", cfg.Webhook.URL)
	require.Equal(t, 30, cfg.Monitor.IntervalMinutes)
	require.Equal(t, 500, cfg.Monitor.PollMillis)
	require.Equal(t, "Europe/Amsterdam", cfg.Monitor.Timezone)
	require.Equal(t, "config.json", cfg.WatchList.Path)
	require.Equal(t, 15, cfg.HTTP.TimeoutSeconds)
	require.False(t, cfg.Fetch.Headless)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingWebhookURLIsFatal(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	t.Setenv("PATHE_WEBHOOK_URL", "")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "webhook.url")
}

func TestLoad_UnprefixedEnvNamesStillWork(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/123/abc")
	t.Setenv("TIMEZONE", "Europe/Brussels")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "Europe/Brussels", cfg.Monitor.Timezone)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_PrefixedEnvWinsOverLegacyName(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "https://legacy.example/hook")
	t.Setenv("PATHE_WEBHOOK_URL", "https://discord.com/api/webhooks/456/def")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://discord.com/api/webhooks/456/def", cfg.Webhook.URL)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/123/abc")

	path := filepath.Join(t.TempDir(), "monitor.yaml")
	doc := "monitor:\n  interval_minutes: 5\nwatchlist:\n  path: /var/lib/pathe/watch.json\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Monitor.IntervalMinutes)
	require.Equal(t, "/var/lib/pathe/watch.json", cfg.WatchList.Path)
}

func TestValidate_RejectsNonPositiveKnobs(t *testing.T) {
	t.Parallel()

	base := Config{
		Webhook:   WebhookConfig{URL: "https://discord.com/api/webhooks/123/abc"},
		Monitor:   MonitorConfig{IntervalMinutes: 30, PollMillis: 500, Timezone: "Europe/Amsterdam"},
		WatchList: WatchListConfig{Path: "config.json"},
		HTTP:      HTTPConfig{TimeoutSeconds: 15},
	}
	require.NoError(t, base.Validate())

	broken := base
	broken.Monitor.IntervalMinutes = 0
	require.Error(t, broken.Validate())

	broken = base
	broken.HTTP.TimeoutSeconds = -1
	require.Error(t, broken.Validate())

	broken = base
	broken.Server = ServerConfig{Enabled: true, Port: 0}
	require.Error(t, broken.Validate())
}
