// Package main is the entry point for the hnews CLI.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/hnews/internal/config"
	"github.com/pders01/hnews/internal/debuglog"
	"github.com/pders01/hnews/internal/tui"
	"github.com/pders01/hnews/internal/validation"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "hnews",
	Short: "Search Hacker News from the terminal",
	Long: `hnews queries the Hacker News search API and lists matching stories.

Type a query and press Enter to search. Results can be opened in the
browser, inspected in a detail view, or narrowed with a local filter.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/hnews/config.toml)")
	rootCmd.PersistentFlags().String("debug", "", "log level: debug, info, warn, error, off (overrides log.level)")
	rootCmd.Flags().Bool("quiet", false, "skip startup banner")
}

// loadConfig reads the config named by --config, applies --debug, starts the
// diagnostic log and checks the API endpoint.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("debug"); level != "" {
		cfg.Log.Level = level
	}
	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
		return nil, err
	}

	endpoint, err := validation.NewEndpointValidator().ValidateEndpoint(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api.base_url: %w", err)
	}
	cfg.API.BaseURL = endpoint

	debuglog.Infof("config loaded: endpoint=%s timeout=%s", cfg.API.BaseURL, cfg.API.HTTPTimeout)
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer debuglog.Close()

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		tui.ShowBanner(Version)
	}

	app := tui.NewApp(cfg)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
