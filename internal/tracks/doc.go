// Package tracks decides which streams of a Matroska file survive cleaning.
//
// Classify keeps every video track, keeps audio in the allowed languages, and
// filters subtitles down to candidates: allowed subtitle languages, plus
// forced tracks in an allowed audio language or the original subtitle
// language. Deduplicate then trims each language to one normal and one
// forced track, preferring the release group (the bracketed source tag in a
// track name) that supplies both. All functions are pure and build new values.
package tracks
