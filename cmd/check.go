package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// newCheckCmd creates the 'check' subcommand: one immediate evaluation of
// the whole watch-list, then exit. Handy for trying out a fresh watch-list
// entry without waiting for the next tick.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Evaluates the watch-list once and exits",
		RunE:  runCheckCommand,
	}
}

func runCheckCommand(cmd *cobra.Command, _ []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.sched.Tick(ctx)
	return nil
}
