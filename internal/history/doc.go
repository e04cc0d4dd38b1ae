// Package history persists the outcome of every processed source file in
// SQLite so repeated runs can skip unchanged files and the CLI can report
// what happened.
//
// Entries are keyed by source path and carry the size and modification time
// observed at processing time, the output path, the final status, and the
// change lines written to the run log. The schema version lives in
// SQLite's user_version field; a mismatch refuses to open the database.
package history
