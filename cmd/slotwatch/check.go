package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dtorcivia/slotwatch/internal/availability"
	"github.com/dtorcivia/slotwatch/internal/engine"
	"github.com/dtorcivia/slotwatch/internal/notifications/telegram"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one availability check",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

// runCheck never fails once configuration is loaded: every outcome of a
// run, including errors, ends with exit status 0.
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fetcher := availability.NewClient(&cfg.Availability, logger)
	notifier := telegram.NewProvider(&cfg.Telegram, logger)

	res := engine.NewEngine(cfg, fetcher, notifier, logger).Run(ctx)
	logger.Debug("Check complete", "run_id", res.RunID, "outcome", string(res.Outcome))

	return nil
}
