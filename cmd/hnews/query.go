package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pders01/hnews/internal/debuglog"
	"github.com/pders01/hnews/internal/hn"
)

var queryCmd = &cobra.Command{
	Use:   "query <words...>",
	Short: "Print matching titles without starting the UI",
	Long: `Query sends one search request and prints a title per line, in API
order. Words are joined with single spaces to form the query. Hits without a
title print as "(untitled)".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().Int("limit", 0, "print at most this many hits (0: all)")
	queryCmd.Flags().Bool("links", false, "append each hit's link after a tab")
	queryCmd.Flags().Bool("json", false, "print hits as JSON")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer debuglog.Close()

	client := hn.NewClient(cfg)
	query := strings.Join(args, " ")

	resp, err := client.Search(searchContext(cmd), query)
	if err != nil {
		debuglog.WithFields(debuglog.Fields{"query": query}).Errorf("search failed: %v", err)
		return err
	}

	hits := resp.Hits
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	links, _ := cmd.Flags().GetBool("links")
	for _, h := range hits {
		title := h.DisplayTitle()
		if title == "" {
			title = "(untitled)"
		}
		if links {
			fmt.Fprintf(out, "%s\t%s\n", title, h.Link())
		} else {
			fmt.Fprintln(out, title)
		}
	}
	return nil
}

// searchContext falls back to a background context when cobra has none.
func searchContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
