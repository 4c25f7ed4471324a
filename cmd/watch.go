package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newWatchCmd creates the 'watch' subcommand, the long-running monitor loop.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Runs the monitor loop until interrupted",
		Long: `Evaluates the watch-list on a fixed interval and keeps doing so until the
process receives SIGINT or SIGTERM. Individual request failures are logged
and never stop the loop.`,
		RunE: runWatchCommand,
	}
}

func runWatchCommand(cmd *cobra.Command, _ []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.logger.Info("Pathé monitor is starting up!")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.cfg.Server.Enabled {
		startOpsServer(ctx, a)
	}

	if err := a.sched.Run(ctx); err != nil {
		return fmt.Errorf("run scheduler: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

// startOpsServer serves /healthz, /readyz and /metrics in the background
// and shuts the listener down when ctx ends.
func startOpsServer(ctx context.Context, a *app) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           a.ops.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("ops server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("ops server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("ops server shutdown failed", zap.Error(err))
		}
	}()
}
