// Package processing drives one MKV file, or a batch of them, through the
// cleaning pipeline.
//
// A Processor resolves the output directory and name, asks the metadata
// provider for the track list, selects and deduplicates tracks, optionally
// extracts and converts kept subtitles to SRT, and hands the resulting
// mkvtoolnix.MuxPlan to the muxer. Afterwards it persists converted
// subtitles, removes temporary files, appends the run log, and records the
// outcome in the history store.
//
// Collaborators are narrow interfaces (MetadataProvider, Extractor, Muxer)
// satisfied by *mkvtoolnix.Client in production and by fakes in tests.
package processing
