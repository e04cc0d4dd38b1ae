package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mkvcleaner/internal/processing"
	"mkvcleaner/internal/tracks"
)

type inspectView struct {
	Source    string         `json:"source" yaml:"source"`
	Output    string         `json:"output" yaml:"output"`
	Title     string         `json:"title" yaml:"title"`
	KeepAll   bool           `json:"keep_all" yaml:"keep_all"`
	Changes   []string       `json:"changes" yaml:"changes"`
	Decisions []decisionView `json:"decisions" yaml:"decisions"`
	Command   []string       `json:"mkvmerge_args" yaml:"mkvmerge_args"`
}

type decisionView struct {
	TrackID  int    `json:"track_id" yaml:"track_id"`
	Kind     string `json:"kind" yaml:"kind"`
	Action   string `json:"action" yaml:"action"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Flags    string `json:"flags,omitempty" yaml:"flags,omitempty"`
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the track decisions and mkvmerge command for a file without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cfg)
			if err != nil {
				return err
			}
			client, err := ctx.toolClient(cfg, logger)
			if err != nil {
				return err
			}
			proc, err := processing.New(cfg, client, client, client,
				processing.WithLogger(logger),
				processing.WithDryRun(true),
				processing.WithForce(true),
			)
			if err != nil {
				return err
			}
			result, err := proc.Process(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			view := newInspectView(result)
			switch outFormat {
			case formatJSON:
				return writeJSON(cmd, view)
			case formatYAML:
				return writeYAML(cmd, view)
			}
			printInspect(cmd, view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	return cmd
}

func newInspectView(result *processing.Result) inspectView {
	view := inspectView{
		Source:  result.Source,
		Output:  result.Output,
		Title:   result.Title,
		KeepAll: result.KeepAll,
		Changes: result.Changes,
		Command: result.Plan.Args(),
	}
	for _, d := range result.Decisions {
		view.Decisions = append(view.Decisions, decisionView{
			TrackID:  d.TrackID,
			Kind:     d.Kind.String(),
			Action:   d.Action.String(),
			Language: d.Language,
			Title:    d.DisplayTitle,
			Flags:    decisionFlags(d),
			Reason:   d.Reason,
		})
	}
	return view
}

func decisionFlags(d tracks.Decision) string {
	var flags []string
	if d.Default {
		flags = append(flags, "default")
	}
	if d.Original {
		flags = append(flags, "original")
	}
	if d.Forced {
		flags = append(flags, "forced")
	}
	if d.HearingImpaired {
		flags = append(flags, "sdh")
	}
	return strings.Join(flags, ",")
}

func printInspect(cmd *cobra.Command, view inspectView) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Source: %s\n", view.Source)
	fmt.Fprintf(out, "Output: %s\n", view.Output)
	fmt.Fprintf(out, "Title:  %s\n", view.Title)
	if view.KeepAll {
		fmt.Fprintln(out, "No track metadata available; every track would be copied")
	}

	if len(view.Decisions) > 0 {
		rows := make([][]string, 0, len(view.Decisions))
		for _, d := range view.Decisions {
			rows = append(rows, []string{strconv.Itoa(d.TrackID), d.Kind, d.Action, d.Language, d.Title, d.Flags, d.Reason})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable(
			[]string{"ID", "Type", "Action", "Language", "Title", "Flags", "Reason"},
			rows,
			[]columnAlignment{alignRight},
		))
	}

	if len(view.Changes) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Changes:")
		for _, change := range view.Changes {
			fmt.Fprintf(out, "  - %s\n", change)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "mkvmerge %s\n", strings.Join(view.Command, " "))
}
