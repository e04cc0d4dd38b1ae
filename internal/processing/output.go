package processing

import (
	"log/slog"
	"os"
	"path/filepath"

	"mkvcleaner/internal/fileutil"
	"mkvcleaner/internal/logging"
)

// resolveOutputDir picks the configured override or the output subdirectory
// next to source, falling back to the default output directory when the
// preferred one cannot be written. Dry runs only compute the path.
func (p *Processor) resolveOutputDir(logger *slog.Logger, source string) string {
	dir := p.cfg.Paths.OutputDir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(source), p.cfg.Paths.OutputSubdir)
	}
	if p.dryRun {
		return dir
	}
	err := fileutil.ProbeWritable(dir)
	if err == nil {
		return dir
	}

	fallback := p.cfg.Paths.DefaultOutputDir
	logging.WarnWithContext(logger, "output directory not writable; using default", "output_dir_fallback",
		logging.String("preferred", dir),
		logging.String("fallback", fallback),
		logging.Error(err),
		logging.String(logging.FieldImpact, "output written to the default directory"),
		logging.String(logging.FieldErrorHint, "check permissions or set paths.output_dir"),
	)
	if mkErr := os.MkdirAll(fallback, 0o755); mkErr != nil {
		logger.Error("default output directory unavailable", logging.String("path", fallback), logging.Error(mkErr))
	}
	return fallback
}
