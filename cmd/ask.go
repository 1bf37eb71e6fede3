package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/botrelay/internal/gateway"
)

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Send a single message to the bot and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			return errors.New(gateway.MsgEmptyMessage)
		}

		adapter, err := createAdapterFromConfig(cfg, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
		defer cancel()

		res, err := adapter.Send(ctx, message)
		if err != nil {
			_, payload := gateway.ErrorResponse(err)
			if payload.RequestID != "" {
				return fmt.Errorf("%s (request id %s)", payload.Response, payload.RequestID)
			}
			return errors.New(payload.Response)
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
