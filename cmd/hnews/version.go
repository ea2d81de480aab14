package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/hnews/internal/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of hnews",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tui.AppName, Version)
		fmt.Fprintln(cmd.OutOrStdout(), "Hacker News search")
		fmt.Fprintln(cmd.OutOrStdout(), "github.com/pders01/hnews")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
