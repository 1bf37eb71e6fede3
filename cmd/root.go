package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "botrelay",
	Short: "HTTP relay between a chat front-end and a conversational-AI bot",
	Long: `botrelay forwards chat messages from a web front-end to a hosted
conversational-AI bot (Coze by default, or any OpenAI-compatible API),
normalizes the bot's reply into plain text and reports provider failures
in a uniform JSON shape.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".botrelay.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
