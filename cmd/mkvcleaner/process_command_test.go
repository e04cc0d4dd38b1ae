package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const seriesName = "Show.Name.S01E02.Episode.Title.1080p.WEB-DL.x264.mkv"

func TestProcessCommandCleansDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	media := filepath.Join(env.baseDir, "media")
	writeMKV(t, media, seriesName)

	out, _, err := runCLI(t, []string{"process", media}, env.configPath)
	if err != nil {
		t.Fatalf("process: %v\n%s", err, out)
	}
	requireContains(t, out, "cleaned")
	requireContains(t, out, "Processed: 1  Skipped: 0  Failed: 0")

	entries, err := os.ReadDir(filepath.Join(media, "processed"))
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	var mkvs int
	var runLog bool
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".mkv") {
			mkvs++
		}
		if e.Name() == "mkv_process_log.txt" {
			runLog = true
		}
	}
	if mkvs != 1 || !runLog {
		t.Fatalf("unexpected output dir contents: %v", entries)
	}

	out, _, err = runCLI(t, []string{"process", media}, env.configPath)
	if err != nil {
		t.Fatalf("second process: %v", err)
	}
	requireContains(t, out, "Processed: 0  Skipped: 1  Failed: 0")

	out, _, err = runCLI(t, []string{"process", "--force", media}, env.configPath)
	if err != nil {
		t.Fatalf("forced process: %v", err)
	}
	requireContains(t, out, "Processed: 1  Skipped: 0  Failed: 0")
}

func TestProcessCommandDryRunWritesNothing(t *testing.T) {
	env := setupCLITestEnv(t)
	media := filepath.Join(env.baseDir, "media")
	writeMKV(t, media, seriesName)
	override := filepath.Join(env.baseDir, "out")

	out, _, err := runCLI(t, []string{"process", "--dry-run", "--output", override, media}, env.configPath)
	if err != nil {
		t.Fatalf("process --dry-run: %v", err)
	}
	requireContains(t, out, "planned")
	if _, err := os.Stat(override); !os.IsNotExist(err) {
		t.Fatalf("dry run created %s: %v", override, err)
	}
	if _, err := os.Stat(filepath.Join(media, "processed")); !os.IsNotExist(err) {
		t.Fatalf("dry run created output subdir: %v", err)
	}
}

func TestProcessCommandReportsFailures(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "missing.mkv")

	out, _, err := runCLI(t, []string{"process", missing}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	requireContains(t, err.Error(), "1 of 1 file(s) failed")
	requireContains(t, out, "Failed: 1")
}

func TestProcessCommandEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := filepath.Join(env.baseDir, "empty")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, []string{"process", empty}, env.configPath)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	requireContains(t, out, "No MKV files found")
}

func TestProcessCommandRequiresArgs(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"process"}, env.configPath); err == nil {
		t.Fatal("expected argument error")
	}
}
