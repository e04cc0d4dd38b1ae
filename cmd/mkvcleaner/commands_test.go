package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"mkvcleaner/internal/history"
)

func TestInspectCommandShowsDecisions(t *testing.T) {
	env := setupCLITestEnv(t)
	source := writeMKV(t, filepath.Join(env.baseDir, "media"), seriesName)

	out, _, err := runCLI(t, []string{"inspect", source}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Episode Title")
	requireContains(t, out, "drop")
	requireContains(t, out, "mkvmerge -o ")
	requireContains(t, out, "--audio-tracks 1")

	out, _, err = runCLI(t, []string{"inspect", "--format", "json", source}, env.configPath)
	if err != nil {
		t.Fatalf("inspect json: %v", err)
	}
	var view inspectView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode inspect json: %v\n%s", err, out)
	}
	if len(view.Decisions) != 5 {
		t.Fatalf("decisions = %+v", view.Decisions)
	}
	for _, d := range view.Decisions {
		if d.TrackID == 2 && d.Action != "drop" {
			t.Fatalf("german audio should be dropped: %+v", d)
		}
	}
	if _, err := os.Stat(filepath.Join(env.baseDir, "media", "processed")); !os.IsNotExist(err) {
		t.Fatalf("inspect created output dir: %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	requireContains(t, out, "== System ==")
	requireContains(t, out, "mkvmerge v80.0")
	requireContains(t, out, "== History ==")
	requireContains(t, out, "0 file(s)")
}

func TestHistoryCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	media := filepath.Join(env.baseDir, "media")
	source := writeMKV(t, media, seriesName)
	if _, _, err := runCLI(t, []string{"process", media}, env.configPath); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, source)
	requireContains(t, out, string(history.StatusProcessed))

	out, _, err = runCLI(t, []string{"history", "--format", "yaml"}, env.configPath)
	if err != nil {
		t.Fatalf("history yaml: %v", err)
	}
	var entries []history.Entry
	if err := yaml.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].SourcePath != source {
		t.Fatalf("entries = %+v", entries)
	}

	out, _, err = runCLI(t, []string{"history", "forget", source}, env.configPath)
	if err != nil {
		t.Fatalf("history forget: %v", err)
	}
	requireContains(t, out, "Forgot")

	out, _, err = runCLI(t, []string{"history", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Removed 0 history entries")

	if _, _, err := runCLI(t, []string{"history", "--format", "xml"}, env.configPath); err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Audio languages: eng")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
}
