package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/botrelay/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing a send_message tool that relays to the configured bot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Logs go to stderr; stdout carries the MCP protocol.
		logger := newLogger(cfg)

		adapter, err := createAdapterFromConfig(cfg, logger)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		logger.Info("botrelay MCP server started on stdio", "provider", adapter.ProviderName())

		srv := mcpserver.NewServer(adapter)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
