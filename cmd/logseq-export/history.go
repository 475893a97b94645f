// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/logseq-export/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [page.md]",
	Short: "List recorded exports",
	Long: `History lists exports recorded with convert --history, newest first.
Pass a page path to show only the exports of that page. Without --limit
the history.max_results setting (default 20) applies.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var source string
	if len(args) > 0 {
		source = args[0]
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), source, limit)
	if err != nil {
		return err
	}
	return formatHistory(entries, jsonOutput)
}

func formatHistory(entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No exports recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-20s  %-40s  %-6s  %s\n", "ID", "Exported", "Output", "Assets", "Lines")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, e := range entries {
		out := e.Output
		if len(out) > 40 {
			out = "..." + out[len(out)-37:]
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-20s  %-40s  %-6d  %d/%d\n",
			e.ID, e.ExportedAt.Local().Format("2006-01-02 15:04:05"), out,
			len(e.Assets), e.Lines.Output, e.Lines.Input)
	}

	fmt.Fprintf(os.Stdout, "\n%d exports\n", len(entries))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum entries (0 = use history.max_results)")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}
