package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dtorcivia/slotwatch/internal/config"
	"github.com/dtorcivia/slotwatch/internal/notifications/telegram"
)

func newTestNotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Verify Telegram credentials and send a test message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			provider := telegram.NewProvider(&cfg.Telegram, logger)
			if !provider.Enabled() {
				return fmt.Errorf("%w: %s and %s are required", config.ErrMissingRequired,
					config.FieldTelegramBotToken, config.FieldTelegramChatID)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			bot, err := provider.GetBotInfo(ctx)
			if err != nil {
				return fmt.Errorf("failed to reach bot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bot @%s (id %d) reachable\n", bot.Username, bot.ID)

			if err := provider.SendTest(ctx); err != nil {
				return fmt.Errorf("failed to send test message: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Test message sent to chat %s\n", cfg.Telegram.ChatID)

			return nil
		},
	}
}
