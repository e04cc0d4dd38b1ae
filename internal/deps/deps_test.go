package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected blank command to be reported as unconfigured, got %#v", results[2])
	}
}

func TestResolveMkvmergePrefersConfiguredPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	dir := t.TempDir()
	configured := writeStub(t, dir, "my-mkvmerge")

	if got := ResolveMkvmerge(configured); got != configured {
		t.Fatalf("ResolveMkvmerge = %q, want %q", got, configured)
	}
}

func TestResolveMkvmergeFallsBackToPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	binDir := t.TempDir()
	want := writeStub(t, binDir, "mkvmerge")
	t.Setenv("PATH", binDir)

	if got := ResolveMkvmerge(filepath.Join(binDir, "missing")); got != want {
		t.Fatalf("ResolveMkvmerge = %q, want %q", got, want)
	}
}

func TestResolveMkvextractUsesSibling(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	toolDir := t.TempDir()
	mkvmerge := writeStub(t, toolDir, "mkvmerge")
	want := writeStub(t, toolDir, "mkvextract")
	t.Setenv("PATH", "")

	if got := ResolveMkvextract("", mkvmerge); got != want {
		t.Fatalf("ResolveMkvextract = %q, want %q", got, want)
	}
}

func TestCheckMkvToolNixMarksExtractOptional(t *testing.T) {
	t.Setenv("PATH", "")
	results := CheckMkvToolNix("mkvmerge", "mkvextract")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Optional {
		t.Fatal("mkvmerge must be required")
	}
	if !results[1].Optional {
		t.Fatal("mkvextract should be optional")
	}
	for _, status := range results {
		if status.Available {
			t.Fatalf("expected %s to be unavailable with empty PATH", status.Name)
		}
	}
}

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}
