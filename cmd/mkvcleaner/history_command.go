package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"mkvcleaner/internal/config"
	"mkvcleaner/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var format string

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List previously processed files",
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openEnabledHistory(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			switch outFormat {
			case formatJSON:
				return writeJSON(cmd, entries)
			case formatYAML:
				return writeYAML(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No files recorded")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Updated", "Source", "Status", "Output"}, historyRows(entries), nil))
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of entries (0 for all)")
	historyCmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")

	historyCmd.AddCommand(newHistoryForgetCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func newHistoryForgetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <file>...",
		Short: "Remove files from history so they are processed again",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openEnabledHistory(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			for _, arg := range args {
				path, err := filepath.Abs(arg)
				if err != nil {
					return err
				}
				removed, err := store.Remove(cmd.Context(), path)
				if err != nil {
					return err
				}
				if removed {
					fmt.Fprintf(out, "Forgot %s\n", path)
				} else {
					fmt.Fprintf(out, "Not in history: %s\n", path)
				}
			}
			return nil
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every history entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openEnabledHistory(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d history entr%s\n", removed, pluralY(removed))
			return nil
		},
	}
}

func openEnabledHistory(ctx *commandContext, cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled (set history.enabled = true)")
	}
	return ctx.openHistory(cfg)
}

func historyRows(entries []history.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		output := e.OutputPath
		if output == "" {
			output = "-"
		}
		status := string(e.Status)
		if e.ErrorMessage != "" {
			status += ": " + e.ErrorMessage
		}
		rows = append(rows, []string{
			e.UpdatedAt.Local().Format("2006-01-02 15:04"),
			e.SourcePath,
			status,
			output,
		})
	}
	return rows
}

func pluralY(n int64) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
