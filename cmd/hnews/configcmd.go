package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/hnews/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the hnews configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Write the default configuration",
	Long: `Generate writes every setting with its default value to path, or to
~/.config/hnews/config.toml when no path is given. An existing file is
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			return fmt.Errorf("generating config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated default configuration at: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(configCmd)
}
