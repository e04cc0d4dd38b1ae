package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mkvcleaner/internal/config"
	"mkvcleaner/internal/history"
	"mkvcleaner/internal/logging"
	"mkvcleaner/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories, MKVToolNix and processing history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cmd.Context(), cfg)
			if client, err := ctx.toolClient(cfg, logging.NewNop()); err == nil {
				results = append(results, preflight.CheckVersion(cmd.Context(), "mkvmerge version", client))
			}

			lines := renderSectionHeader("System", colorize)
			lines = append(lines, checkLines(results, colorize)...)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("History", colorize)...)
			lines = append(lines, historyLines(cmd, cfg, colorize)...)

			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d required check(s) failed", len(failed))
			}
			return nil
		},
	}
}

func historyLines(cmd *cobra.Command, cfg *config.Config, colorize bool) []string {
	if !cfg.History.Enabled {
		return []string{renderStatusLine("History", statusInfo, "disabled", colorize)}
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return []string{renderStatusLine("History", statusError, err.Error(), colorize)}
	}
	defer store.Close()

	counts, err := store.Counts(cmd.Context())
	if err != nil {
		return []string{renderStatusLine("History", statusError, err.Error(), colorize)}
	}
	lines := []string{renderStatusLine("Database", statusOK, store.Path(), colorize)}
	for _, status := range []history.Status{history.StatusProcessed, history.StatusReview, history.StatusFailed} {
		kind := statusInfo
		if status == history.StatusFailed && counts[status] > 0 {
			kind = statusWarn
		}
		label := strings.ToUpper(string(status[:1])) + string(status[1:])
		lines = append(lines, renderStatusLine(label, kind, fmt.Sprintf("%d file(s)", counts[status]), colorize))
	}
	return lines
}
