package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the built-in match3.yaml. Save it to ~/.arcade/configs/match3.yaml
or ./configs/match3.yaml to override it, or pass it with --config.

Examples:
  match3 config > ~/.arcade/configs/match3.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.GetDefaultYAML("match3"))
		return err
	},
}
