// Package subtitles detects the format of extracted subtitle streams and
// converts the text-bearing ones to SRT.
//
// Detect classifies raw bytes as SRT, ASS/SSA, TTML, generic XML, bitmap
// (PGS or VobSub), vector drawings, or unknown text. Convert turns the
// text-bearing formats into sorted Entry values and fails with a
// *ConversionError for the rest, so callers can keep the original track
// instead. Wrap reflows long lines at readable break points and WriteSRT
// renders the final file. Everything here operates on in-memory bytes; the
// processor owns the file I/O.
package subtitles
