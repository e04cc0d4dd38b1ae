package processing

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mkvcleaner/internal/config"
	"mkvcleaner/internal/filename"
	"mkvcleaner/internal/history"
	"mkvcleaner/internal/logging"
	"mkvcleaner/internal/mkvtoolnix"
	"mkvcleaner/internal/services"
	"mkvcleaner/internal/subtitles"
	"mkvcleaner/internal/tracks"
)

// MetadataProvider lists the tracks of a container. An empty list with a nil
// error means the file could not be inspected and is copied unfiltered.
type MetadataProvider interface {
	Identify(ctx context.Context, path string) ([]tracks.Track, error)
}

// Extractor writes a single track of a container to dest.
type Extractor interface {
	Extract(ctx context.Context, path string, trackID int, dest string) error
}

// Muxer executes a mux plan, reporting progress percentages.
type Muxer interface {
	Mux(ctx context.Context, plan mkvtoolnix.MuxPlan, progress func(int)) error
}

// HistoryStore is the part of *history.Store the processor needs.
type HistoryStore interface {
	AlreadyProcessed(ctx context.Context, sourcePath string, size int64, mtime time.Time) (bool, error)
	Record(ctx context.Context, entry history.Entry) (*history.Entry, error)
}

// ProgressFunc receives mux progress for a source file.
type ProgressFunc func(source string, percent int)

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the processor logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logging.NewComponentLogger(logger, "processor")
	}
}

// WithHistory enables history lookups and recording.
func WithHistory(store HistoryStore) Option {
	return func(p *Processor) { p.history = store }
}

// WithDryRun stops each file after its mux plan is built.
func WithDryRun(enabled bool) Option {
	return func(p *Processor) { p.dryRun = enabled }
}

// WithForce processes files even when history marks them as done.
func WithForce(enabled bool) Option {
	return func(p *Processor) { p.force = enabled }
}

// WithProgress registers a mux progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Processor) { p.progress = fn }
}

// WithClock overrides the time source used for run-log timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// Processor runs the cleaning pipeline for individual files.
type Processor struct {
	cfg       *config.Config
	prefs     tracks.Preferences
	converter subtitles.Converter

	metadata  MetadataProvider
	extractor Extractor
	muxer     Muxer
	history   HistoryStore

	logger   *slog.Logger
	dryRun   bool
	force    bool
	progress ProgressFunc
	now      func() time.Time

	mu      sync.Mutex
	sampler *logging.ProgressSampler
}

// Result describes what happened to one file.
type Result struct {
	Source string
	Output string
	Title  string
	RunID  string
	State  State
	// Skipped is set when history shows the file was already processed.
	Skipped bool
	// KeepAll is set when no track metadata was available.
	KeepAll        bool
	Changes        []string
	Decisions      []tracks.Decision
	Plan           mkvtoolnix.MuxPlan
	SavedSubtitles []string
	Err            error
}

// New constructs a processor. extractor may be nil when subtitle extraction
// is disabled.
func New(cfg *config.Config, metadata MetadataProvider, extractor Extractor, muxer Muxer, opts ...Option) (*Processor, error) {
	var errs []error
	if cfg == nil {
		errs = append(errs, errors.New("config is required"))
	}
	if metadata == nil {
		errs = append(errs, errors.New("metadata provider is required"))
	}
	if muxer == nil {
		errs = append(errs, errors.New("muxer is required"))
	}
	if cfg != nil && cfg.Subtitles.Extract && extractor == nil {
		errs = append(errs, errors.New("extractor is required when subtitle extraction is enabled"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "processor", "new", "invalid processor setup", err)
	}
	p := &Processor{
		cfg:       cfg,
		prefs:     PreferencesFromConfig(cfg),
		converter: subtitles.Converter{MaxLineLength: cfg.Subtitles.MaxLineLength},
		metadata:  metadata,
		extractor: extractor,
		muxer:     muxer,
		logger:    logging.NewComponentLogger(nil, "processor"),
		now:       time.Now,
		sampler:   logging.NewProgressSampler(10),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// PreferencesFromConfig derives the per-file track policy from cfg.
func PreferencesFromConfig(cfg *config.Config) tracks.Preferences {
	return tracks.Preferences{
		AllowedAudio:           cfg.Languages.AllowedAudio,
		AllowedSubtitle:        cfg.Languages.AllowedSubtitle,
		DefaultAudio:           cfg.Languages.DefaultAudio,
		DefaultSubtitle:        cfg.Languages.DefaultSubtitle,
		OriginalAudio:          cfg.Languages.OriginalAudio,
		OriginalSubtitle:       cfg.Languages.OriginalSubtitle,
		ExtractSubtitles:       cfg.Subtitles.Extract,
		SaveExtractedSubtitles: cfg.Subtitles.SaveExtracted,
	}
}

// Process runs the pipeline for path. The returned Result is never nil; the
// error is non-nil only when the file failed.
func (p *Processor) Process(ctx context.Context, path string) (*Result, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithFile(ctx, path)
	logger := logging.WithContext(ctx, p.logger)
	result := &Result{Source: path, RunID: runID, State: StateStart}

	info, err := os.Stat(path)
	if err != nil {
		return p.fail(ctx, logger, result, nil, services.Wrap(services.ErrNotFound, "start", "stat source", "source file unavailable", err))
	}
	if info.IsDir() {
		return p.fail(ctx, logger, result, info, services.Wrap(services.ErrValidation, "start", "stat source", "source is a directory", nil))
	}
	if p.alreadyProcessed(ctx, logger, path, info) {
		result.Skipped = true
		return result, nil
	}

	logger.Info("processing started",
		logging.String(logging.FieldEventType, "process_start"),
		logging.Int64("size_bytes", info.Size()),
		logging.Bool("dry_run", p.dryRun),
	)

	outputDir := p.resolveOutputDir(logger, path)
	name := filepath.Base(path)
	series := filename.Parse(name)
	fileName, title := filename.OutputName(name, series)
	result.State = StateTitleResolved

	found, err := p.metadata.Identify(ctx, path)
	if err != nil {
		return p.fail(ctx, logger, result, info, err)
	}
	if len(found) == 0 {
		// Without track metadata nothing is filtered and the series name is
		// not trusted either.
		fileName, title = filename.OutputName(name, filename.SeriesInfo{})
		result.KeepAll = true
		logging.WarnWithContext(logger, "no track metadata; keeping all tracks", "metadata_unavailable",
			logging.String(logging.FieldImpact, "output keeps every source track"),
			logging.String(logging.FieldErrorHint, "inspect the file with `mkvcleaner inspect`"),
		)
	}
	result.Output = filepath.Join(outputDir, fileName)
	result.Title = title
	result.Changes = append(result.Changes, "Renamed to: "+fileName, "MKV title: "+title)
	if !result.KeepAll && series.EpisodeTitle != "" {
		result.Changes = append(result.Changes, "Episode title extracted: "+series.EpisodeTitle)
	}
	if result.Output == path {
		return p.fail(ctx, logger, result, info, services.Wrap(services.ErrValidation, "title", "output name", "output would overwrite source", nil))
	}

	selection := tracks.Select(found, p.prefs)
	result.State = StateTracksClassified
	result.Decisions = selection.Decisions
	result.Changes = append(result.Changes, selection.Changes...)
	result.State = StateSubtitlesDeduplicated
	p.logDecisions(logger, selection.Decisions)

	var converted []convertedSubtitle
	if p.prefs.ExtractSubtitles && !p.dryRun && !result.KeepAll {
		converted = p.convertSubtitles(ctx, logger, path, outputDir, selection)
	}
	result.State = StateSubtitlesConverted

	result.Plan = buildPlan(path, result.Output, title, result.KeepAll, selection, converted)
	if len(converted) > 0 {
		result.Changes = append(result.Changes, subtitleChange(len(converted)))
	}
	result.State = StateMuxInstructionBuilt
	if p.dryRun {
		logger.Info("dry run: mux plan built",
			logging.String(logging.FieldEventType, "dry_run"),
			logging.String("output", result.Output),
			logging.String("args", strings.Join(result.Plan.Args(), " ")),
		)
		return result, nil
	}

	if err := p.mux(ctx, logger, result.Plan); err != nil {
		removeAll(logger, tempPaths(converted))
		return p.fail(ctx, logger, result, info, err)
	}
	result.State = StateMuxed

	result.SavedSubtitles = p.finishSubtitles(logger, result.Output, converted)
	if err := p.appendRunLog(outputDir, name, result.Changes); err != nil {
		logging.WarnWithContext(logger, "run log append failed", "run_log_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "change summary missing from run log"),
		)
	}
	result.State = StateLoggedAndCleaned
	p.record(ctx, logger, result, info, nil)

	logger.Info("processing completed",
		logging.String(logging.FieldEventType, "process_complete"),
		logging.String("output", result.Output),
		logging.Int("changes", len(result.Changes)),
	)
	return result, nil
}

func (p *Processor) alreadyProcessed(ctx context.Context, logger *slog.Logger, path string, info os.FileInfo) bool {
	if p.history == nil || p.force || !p.cfg.History.SkipProcessed {
		return false
	}
	done, err := p.history.AlreadyProcessed(ctx, path, info.Size(), info.ModTime())
	if err != nil {
		logging.WarnWithContext(logger, "history lookup failed", "history_lookup_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "file processed again"),
		)
		return false
	}
	if done {
		logger.Info("skipping already processed file",
			logging.Args(logging.DecisionAttrs("history_skip", "skipped", "unchanged since last successful run")...)...,
		)
	}
	return done
}

func (p *Processor) logDecisions(logger *slog.Logger, decisions []tracks.Decision) {
	for _, d := range decisions {
		attrs := append(
			logging.DecisionAttrs(d.Kind.String()+"_track", d.Action.String(), d.Reason),
			logging.Int(logging.FieldTrackID, d.TrackID),
			logging.String(logging.FieldLanguage, d.Language),
			logging.Bool("default", d.Default),
			logging.Bool("forced", d.Forced),
		)
		logger.Debug("track decision", logging.Args(attrs...)...)
	}
}

func (p *Processor) mux(ctx context.Context, logger *slog.Logger, plan mkvtoolnix.MuxPlan) error {
	p.mu.Lock()
	p.sampler.Reset()
	p.mu.Unlock()

	start := time.Now()
	err := p.muxer.Mux(ctx, plan, func(percent int) {
		p.mu.Lock()
		emit := p.sampler.ShouldLog(percent, "mux")
		p.mu.Unlock()
		if emit {
			logger.Info("mux progress", logging.Int(logging.FieldPercent, percent))
		}
		if p.progress != nil {
			p.progress(plan.Source, percent)
		}
	})
	if err != nil {
		return err
	}
	logger.Info("mux finished",
		logging.String(logging.FieldEventType, "mux_complete"),
		logging.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (p *Processor) fail(ctx context.Context, logger *slog.Logger, result *Result, info os.FileInfo, err error) (*Result, error) {
	result.State = StateFailed
	result.Err = err
	logging.ErrorWithContext(logger, "processing failed", "process_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, services.Hint(err)),
	)
	p.record(ctx, logger, result, info, err)
	return result, err
}

func (p *Processor) record(ctx context.Context, logger *slog.Logger, result *Result, info os.FileInfo, procErr error) {
	if p.history == nil || p.dryRun || !p.cfg.History.Enabled || info == nil {
		return
	}
	entry := history.Entry{
		SourcePath:  result.Source,
		SourceSize:  info.Size(),
		SourceMTime: info.ModTime(),
		OutputPath:  result.Output,
		Title:       result.Title,
		Status:      history.StatusProcessed,
		RunID:       result.RunID,
		Changes:     result.Changes,
	}
	if procErr != nil {
		entry.Status = services.FailureStatus(procErr)
		entry.ErrorMessage = procErr.Error()
	}
	if _, err := p.history.Record(ctx, entry); err != nil {
		logging.WarnWithContext(logger, "history record failed", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "file will be processed again next run"),
		)
	}
}
