package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"mkvcleaner/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("mkvmerge", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "mkvmerge:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("mkvmerge", statusOK, "Ready", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestCheckLines(t *testing.T) {
	lines := checkLines([]preflight.Result{
		{Name: "mkvmerge", Passed: true, Detail: "/usr/bin/mkvmerge"},
		{Name: "mkvextract", Optional: true},
		{Name: "Log directory", Detail: "/nope (error: does not exist)"},
	}, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[OK] /usr/bin/mkvmerge") {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "[WARN] unavailable") {
		t.Fatalf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "[ERROR] /nope") {
		t.Fatalf("line 2 = %q", lines[2])
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderTablePadsRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, nil)
	if !strings.Contains(out, "only") || !strings.Contains(out, "╭") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty table for no headers")
	}
}

func TestParseFormat(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want outputFormat
		ok   bool
	}{
		{"", formatTable, true},
		{"JSON", formatJSON, true},
		{" yaml ", formatYAML, true},
		{"csv", "", false},
	} {
		got, err := parseFormat(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Fatalf("parseFormat(%q) = %q, %v", tc.in, got, err)
		}
	}
}
