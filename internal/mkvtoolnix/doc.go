// Package mkvtoolnix wraps the mkvmerge and mkvextract command-line tools.
//
// Client.Identify reads a container's track list from `mkvmerge -J`,
// Client.Extract pulls one track into a file, and Client.Mux runs an
// mkvmerge invocation described by a MuxPlan while reporting progress.
// Command execution sits behind the Executor interface so tests can replay
// canned output without the tools installed.
package mkvtoolnix
