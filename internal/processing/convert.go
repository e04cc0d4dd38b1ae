package processing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mkvcleaner/internal/filename"
	"mkvcleaner/internal/fileutil"
	"mkvcleaner/internal/logging"
	"mkvcleaner/internal/services"
	"mkvcleaner/internal/subtitles"
	"mkvcleaner/internal/tracks"
)

// convertedSubtitle is a kept subtitle track that now lives in an SRT file.
type convertedSubtitle struct {
	candidate tracks.Candidate
	decision  tracks.Decision
	format    subtitles.Format
}

// convertSubtitles extracts every kept subtitle and converts it to SRT in
// dir. Tracks that fail are left out of the result, so the plan keeps the
// original track instead.
func (p *Processor) convertSubtitles(ctx context.Context, logger *slog.Logger, source, dir string, selection tracks.Selection) []convertedSubtitle {
	base := filename.BaseName(source)
	var out []convertedSubtitle
	for _, candidate := range selection.Subtitles {
		if ctx.Err() != nil {
			break
		}
		decision, ok := selection.Decision(candidate.ID)
		if !ok || !decision.Kept() {
			continue
		}
		attrs := []logging.Attr{
			logging.Int(logging.FieldTrackID, candidate.ID),
			logging.String(logging.FieldLanguage, candidate.Language),
		}
		path, format, err := p.convertOne(ctx, source, dir, base, candidate)
		if err != nil {
			attrs = append(attrs,
				logging.String("format", format.String()),
				logging.Error(err),
				logging.String(logging.FieldImpact, "original subtitle track kept unconverted"),
			)
			logging.WarnWithContext(logger, "subtitle conversion failed", "subtitle_conversion_failed", attrs...)
			continue
		}
		candidate.ConvertedPath = path
		candidate.IsSRT = true
		out = append(out, convertedSubtitle{candidate: candidate, decision: decision, format: format})
		attrs = append(attrs, logging.String("format", format.String()), logging.String("path", path))
		logger.Info("subtitle converted", logging.Args(attrs...)...)
	}
	return out
}

func (p *Processor) convertOne(ctx context.Context, source, dir, base string, c tracks.Candidate) (string, subtitles.Format, error) {
	temp := filepath.Join(dir, subtitles.TempName(base, c.Language, c.Forced, c.HearingImpaired, c.ID))
	defer func() {
		_ = fileutil.RemoveIfExists(temp)
	}()

	if err := p.extractor.Extract(ctx, source, c.ID, temp); err != nil {
		return "", subtitles.FormatUnknownText, err
	}
	data, err := os.ReadFile(temp)
	if err != nil {
		return "", subtitles.FormatUnknownText, services.Wrap(services.ErrExternalTool, "convert", "read extracted track", fmt.Sprintf("track %d", c.ID), err)
	}
	srt, format, err := p.converter.ToSRT(data)
	if err != nil {
		return "", format, services.Wrap(services.ErrValidation, "convert", format.String(), "subtitle not convertible", err)
	}
	final := filepath.Join(dir, subtitles.SRTName(base, c.Language, c.Forced, c.HearingImpaired))
	if err := fileutil.WriteFileAtomic(final, srt, 0o644); err != nil {
		return "", format, services.Wrap(services.ErrTransient, "convert", "write srt", final, err)
	}
	return final, format, nil
}

// finishSubtitles moves converted files next to output when they are kept,
// and deletes them otherwise. It returns the persisted paths.
func (p *Processor) finishSubtitles(logger *slog.Logger, output string, converted []convertedSubtitle) []string {
	if !p.prefs.SaveExtractedSubtitles {
		removeAll(logger, tempPaths(converted))
		return nil
	}
	outputBase := filename.BaseName(output)
	dir := filepath.Dir(output)
	var saved []string
	for _, conv := range converted {
		c := conv.candidate
		dest := filepath.Join(dir, subtitles.SRTName(outputBase, c.Language, c.Forced, c.HearingImpaired))
		if dest != c.ConvertedPath {
			if err := fileutil.MoveFile(c.ConvertedPath, dest); err != nil {
				logging.WarnWithContext(logger, "saving subtitle failed", "subtitle_save_failed",
					logging.String("path", c.ConvertedPath),
					logging.Error(err),
					logging.String(logging.FieldImpact, "converted subtitle not kept beside output"),
				)
				_ = fileutil.RemoveIfExists(c.ConvertedPath)
				continue
			}
		}
		saved = append(saved, dest)
	}
	return saved
}

func tempPaths(converted []convertedSubtitle) []string {
	paths := make([]string, 0, len(converted))
	for _, conv := range converted {
		paths = append(paths, conv.candidate.ConvertedPath)
	}
	return paths
}

func removeAll(logger *slog.Logger, paths []string) {
	for _, path := range paths {
		if err := fileutil.RemoveIfExists(path); err != nil {
			logger.Debug("temporary file cleanup failed", logging.String("path", path), logging.Error(err))
		}
	}
}

func subtitleChange(count int) string {
	return fmt.Sprintf("Processed %d subtitle(s) with proper formatting and flags", count)
}
