package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"mkvcleaner/internal/config"
	"mkvcleaner/internal/preflight"
	"mkvcleaner/internal/processing"
)

type processOptions struct {
	output        string
	extract       bool
	saveExtracted bool
	recursive     bool
	force         bool
	dryRun        bool
}

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var opts processOptions

	cmd := &cobra.Command{
		Use:   "process <path>...",
		Short: "Clean MKV files or every MKV file in a directory",
		Long: `Process filters audio and subtitle tracks by language, normalizes
subtitles, retitles the container, and writes the cleaned copy to the
output directory. Directories are expanded to the MKV files they contain.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := applyProcessOverrides(cmd, loaded, opts)
			if err != nil {
				return err
			}
			return runProcess(cmd, ctx, cfg, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write all cleaned files to this directory")
	cmd.Flags().BoolVar(&opts.extract, "extract-subtitles", false, "Convert kept text subtitles to SRT")
	cmd.Flags().BoolVar(&opts.saveExtracted, "save-subtitles", false, "Keep converted SRT files next to the output (implies --extract-subtitles)")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Process files even if history marks them as done")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Plan every file without writing anything")
	return cmd
}

// applyProcessOverrides returns a copy of cfg with command-line flags
// applied on top of the file settings.
func applyProcessOverrides(cmd *cobra.Command, loaded *config.Config, opts processOptions) (*config.Config, error) {
	cfg := *loaded
	if out := strings.TrimSpace(opts.output); out != "" {
		expanded, err := config.ExpandPath(out)
		if err != nil {
			return nil, fmt.Errorf("resolve output directory: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if cmd.Flags().Changed("extract-subtitles") {
		cfg.Subtitles.Extract = opts.extract
	}
	if cmd.Flags().Changed("save-subtitles") {
		cfg.Subtitles.SaveExtracted = opts.saveExtracted
	}
	if cfg.Subtitles.SaveExtracted {
		cfg.Subtitles.Extract = true
	}
	return &cfg, nil
}

func runProcess(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, opts processOptions, args []string) error {
	if cfg.Paths.OutputDir != "" && !opts.dryRun {
		if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := checkPreflight(cmd, cfg, opts.dryRun); err != nil {
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

	procOpts := []processing.Option{
		processing.WithLogger(logger),
		processing.WithDryRun(opts.dryRun),
		processing.WithForce(opts.force),
	}
	if cfg.History.Enabled && !opts.dryRun {
		store, err := ctx.openHistory(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		procOpts = append(procOpts, processing.WithHistory(store))
	}
	bars := newProgressBars(cmd.ErrOrStderr())
	if bars != nil {
		procOpts = append(procOpts, processing.WithProgress(bars.update))
	}

	var extractor processing.Extractor
	if cfg.Subtitles.Extract {
		extractor = client
	}
	proc, err := processing.New(cfg, client, extractor, client, procOpts...)
	if err != nil {
		return err
	}

	inputs, err := proc.CollectInputs(args, opts.recursive)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No MKV files found")
		return nil
	}

	summary, err := proc.ProcessBatch(cmd.Context(), inputs)
	if bars != nil {
		bars.finish()
	}
	printSummary(cmd.OutOrStdout(), summary, opts.dryRun)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.Failed, len(summary.Results))
	}
	return nil
}

func checkPreflight(cmd *cobra.Command, cfg *config.Config, dryRun bool) error {
	probe := *cfg
	if dryRun {
		// Nothing is written to the override during a dry run.
		probe.Paths.OutputDir = ""
	}
	failed := preflight.Failed(preflight.RunAll(cmd.Context(), &probe))
	if len(failed) == 0 {
		return nil
	}
	out := cmd.ErrOrStderr()
	for _, line := range checkLines(failed, shouldColorize(out)) {
		fmt.Fprintln(out, line)
	}
	return errors.New("preflight checks failed; run `mkvcleaner status` for details")
}

func printSummary(out io.Writer, summary processing.BatchSummary, dryRun bool) {
	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		rows = append(rows, []string{
			filepath.Base(r.Source),
			resultStatus(r, dryRun),
			displayOutput(r),
			strconv.Itoa(len(r.Changes)),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Source", "Status", "Output", "Changes"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
	fmt.Fprintf(out, "Processed: %d  Skipped: %d  Failed: %d\n", summary.Processed, summary.Skipped, summary.Failed)
}

func resultStatus(r *processing.Result, dryRun bool) string {
	switch {
	case r.Err != nil:
		return "failed: " + r.Err.Error()
	case r.Skipped:
		return "skipped"
	case dryRun:
		return "planned"
	case r.KeepAll:
		return "copied (no metadata)"
	default:
		return "cleaned"
	}
}

func displayOutput(r *processing.Result) string {
	if r.Output == "" {
		return "-"
	}
	return r.Output
}

// progressBars draws one bar per source while mkvmerge runs. It is nil when
// the writer is not a terminal.
type progressBars struct {
	out     io.Writer
	mu      sync.Mutex
	current string
	bar     *progressbar.ProgressBar
}

func newProgressBars(out io.Writer) *progressBars {
	if !shouldColorize(out) {
		return nil
	}
	return &progressBars{out: out}
}

func (p *progressBars) update(source string, percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil || p.current != source {
		if p.bar != nil {
			_ = p.bar.Finish()
		}
		p.current = source
		p.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(filepath.Base(source)),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(percent)
}

func (p *progressBars) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
