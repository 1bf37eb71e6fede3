package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/botrelay/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize botrelay configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose a bot provider and its credentials, and writes them to .botrelay.yml (or the --config path).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (provider %s). Start the relay with `botrelay server`.\n", cfgFile, cfg.Provider)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
