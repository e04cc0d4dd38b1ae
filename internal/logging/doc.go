// Package logging assembles structured slog loggers and formatting helpers used
// across mkvcleaner.
//
// It owns the console and JSON handlers, tees CLI output into the log file,
// and exposes context-aware helpers so processing code automatically tags log
// lines with run IDs, file names, stages, and batch correlation IDs. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
