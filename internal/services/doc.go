// Package services defines the error markers and context helpers shared by
// the processing pipeline and the MKVToolNix client.
//
// Wrap tags failures with a sentinel marker so FailureStatus can later decide
// whether a file lands in history as failed or review. The context helpers
// stamp run, batch, stage, and file identifiers that the logging package
// turns into structured fields.
package services
