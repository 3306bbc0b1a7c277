package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtorcivia/slotwatch/internal/config"
	"github.com/dtorcivia/slotwatch/internal/util"
)

// Set with -ldflags at build time.
var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "slotwatch",
		Short:         "Checks appointment availability and sends a Telegram alert for near slots",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newTestNotifyCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// loadConfig loads configuration and installs the default logger. The debug
// flag forces debug level.
func loadConfig() (*config.Config, *util.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.Logging.Level
	if cfg.Debug {
		level = util.LevelDebug.String()
	}
	logger := util.NewLogger(level, cfg.Logging.Format)
	util.SetDefaultLogger(logger)

	return cfg, logger, nil
}
