// Package cmd defines and implements the CLI commands for the
// pathe-monitor executable.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cinewatch/pathe-monitor/internal/api"
	"github.com/cinewatch/pathe-monitor/internal/clock/system"
	"github.com/cinewatch/pathe-monitor/internal/config"
	"github.com/cinewatch/pathe-monitor/internal/discord"
	collyfetch "github.com/cinewatch/pathe-monitor/internal/fetch/colly"
	"github.com/cinewatch/pathe-monitor/internal/fetch/headless"
	"github.com/cinewatch/pathe-monitor/internal/logging"
	"github.com/cinewatch/pathe-monitor/internal/metrics"
	"github.com/cinewatch/pathe-monitor/internal/monitor"
	"github.com/cinewatch/pathe-monitor/internal/processor"
	"github.com/cinewatch/pathe-monitor/internal/scheduler"
	"github.com/cinewatch/pathe-monitor/internal/watchlist"
)

var cfgFile string

// app holds the wired services a command runs against. Everything in it is
// built once at startup; any failure here is fatal misconfiguration.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	sched   *scheduler.Scheduler
	ops     *api.Server
	closers []func()
}

// close tears down services in reverse construction order.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.logger.Sync()
}

// buildApp loads configuration and wires the full pipeline. It fails fast:
// a missing webhook URL, an unknown log level or an invalid timezone all
// abort startup with a descriptive error.
func buildApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Monitor.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Monitor.Timezone, err)
	}

	metrics.Init()

	a := &app{cfg: cfg, logger: logger}

	var fetcher monitor.Fetcher
	if cfg.Fetch.Headless {
		hf := headless.New(headless.Config{
			UserAgent:         cfg.HTTP.UserAgent,
			NavigationTimeout: time.Duration(cfg.Fetch.NavTimeoutSec) * time.Second,
		})
		a.closers = append(a.closers, hf.Close)
		fetcher = hf
		logger.Info("using headless fetcher")
	} else {
		fetcher = collyfetch.New(collyfetch.Config{
			UserAgent: cfg.HTTP.UserAgent,
			Timeout:   cfg.HTTPTimeout(),
		})
	}

	webhook := discord.NewWebhook(cfg.Webhook.URL, cfg.HTTPTimeout(), logger.Named("webhook"))
	proc := processor.New(fetcher, webhook, logger.Named("processor"))
	store := watchlist.NewStore(cfg.WatchList.Path, logger.Named("watchlist"))

	a.sched = scheduler.New(
		scheduler.Config{
			Interval: cfg.Interval(),
			Poll:     cfg.Poll(),
			Location: loc,
		},
		store,
		proc,
		system.New(),
		logger.Named("scheduler"),
	)
	a.ops = api.NewServer(logger.Named("ops"))

	return a, nil
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pathe-monitor",
		Short: "Watches Pathé schedules and pings Discord when tickets go on sale.",
		Long: `pathe-monitor polls the Pathé schedules endpoint for a configured set of
(cinema, date, movie) requests and sends a Discord webhook notification as
soon as bookable showtimes appear for one of them.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; environment variables override)")

	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newCheckCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
