package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mkvcleaner/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("MKVCLEANER_OUTPUT_DIR", "")
	t.Setenv("MKVCLEANER_MKVMERGE", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantFallback := filepath.Join(tempHome, "Downloads", "MKV-Manager", "processed")
	if cfg.Paths.DefaultOutputDir != wantFallback {
		t.Fatalf("unexpected default output dir: got %q want %q", cfg.Paths.DefaultOutputDir, wantFallback)
	}
	if cfg.Paths.OutputDir != "" {
		t.Fatalf("expected no output override, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.OutputSubdir != "processed" {
		t.Fatalf("unexpected output subdir: %q", cfg.Paths.OutputSubdir)
	}
	if got := cfg.HistoryPath(); got != filepath.Join(tempHome, ".local", "share", "mkvcleaner", "history.db") {
		t.Fatalf("unexpected history path: %q", got)
	}
	if got := cfg.LogFilePath(); !strings.HasSuffix(got, "mkvcleaner.log") {
		t.Fatalf("unexpected log file path: %q", got)
	}
	if len(cfg.Languages.AllowedAudio) != 1 || cfg.Languages.AllowedAudio[0] != "eng" {
		t.Fatalf("unexpected allowed audio: %v", cfg.Languages.AllowedAudio)
	}
	if cfg.Languages.DefaultSubtitle != "eng" || cfg.Languages.OriginalAudio != "eng" {
		t.Fatalf("unexpected language defaults: %+v", cfg.Languages)
	}
	if cfg.Subtitles.Extract || cfg.Subtitles.SaveExtracted {
		t.Fatal("expected extraction disabled by default")
	}
	if cfg.Subtitles.MaxLineLength != 45 {
		t.Fatalf("unexpected max line length: %d", cfg.Subtitles.MaxLineLength)
	}
	if cfg.MuxTimeout() != time.Hour {
		t.Fatalf("unexpected mux timeout: %s", cfg.MuxTimeout())
	}
	if !cfg.History.Enabled || !cfg.History.SkipProcessed {
		t.Fatal("expected history enabled by default")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPathNormalizesLanguages(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mkvcleaner.toml")

	type payload struct {
		Languages struct {
			AllowedAudio     []string `toml:"allowed_audio"`
			AllowedSubtitle  []string `toml:"allowed_subtitle"`
			DefaultAudio     string   `toml:"default_audio"`
			OriginalSubtitle string   `toml:"original_subtitle"`
		} `toml:"languages"`
		Subtitles struct {
			SaveExtracted bool `toml:"save_extracted"`
			MaxLineLength int  `toml:"max_line_length"`
		} `toml:"subtitles"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Languages.AllowedAudio = []string{"en", "Japanese", "jpn", "deu"}
	custom.Languages.AllowedSubtitle = []string{"en-US"}
	custom.Languages.DefaultAudio = "ja"
	custom.Languages.OriginalSubtitle = "fra"
	custom.Subtitles.SaveExtracted = true
	custom.Subtitles.MaxLineLength = 60
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	wantAudio := []string{"eng", "jpn", "ger"}
	if strings.Join(cfg.Languages.AllowedAudio, ",") != strings.Join(wantAudio, ",") {
		t.Fatalf("allowed audio = %v, want %v", cfg.Languages.AllowedAudio, wantAudio)
	}
	if strings.Join(cfg.Languages.AllowedSubtitle, ",") != "eng" {
		t.Fatalf("allowed subtitle = %v", cfg.Languages.AllowedSubtitle)
	}
	if cfg.Languages.DefaultAudio != "jpn" {
		t.Fatalf("default audio = %q", cfg.Languages.DefaultAudio)
	}
	if cfg.Languages.OriginalSubtitle != "fre" {
		t.Fatalf("original subtitle = %q", cfg.Languages.OriginalSubtitle)
	}
	if !cfg.Subtitles.Extract {
		t.Fatal("expected save_extracted to imply extract")
	}
	if cfg.Subtitles.MaxLineLength != 60 {
		t.Fatalf("max line length = %d", cfg.Subtitles.MaxLineLength)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging format = %q", cfg.Logging.Format)
	}
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	outDir := t.TempDir()
	t.Setenv("MKVCLEANER_OUTPUT_DIR", outDir)
	t.Setenv("MKVCLEANER_MKVMERGE", "/opt/mkvtoolnix/mkvmerge")
	t.Setenv("MKVCLEANER_MKVEXTRACT", "mkvextract-custom")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.OutputDir != outDir {
		t.Fatalf("expected output dir from env, got %q", cfg.Paths.OutputDir)
	}
	if cfg.MKVToolNix.MkvmergePath != "/opt/mkvtoolnix/mkvmerge" {
		t.Fatalf("expected mkvmerge path from env, got %q", cfg.MKVToolNix.MkvmergePath)
	}
	if cfg.MKVToolNix.MkvextractPath != "mkvextract-custom" {
		t.Fatalf("bare command names must not be expanded, got %q", cfg.MKVToolNix.MkvextractPath)
	}
}

func TestConfigFileWinsOverEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "mkvcleaner.toml")
	fileOut := t.TempDir()
	contents := "[paths]\noutput_dir = \"" + filepath.ToSlash(fileOut) + "\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MKVCLEANER_OUTPUT_DIR", t.TempDir())

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.OutputDir != fileOut {
		t.Fatalf("expected output dir from file, got %q", cfg.Paths.OutputDir)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mkvcleaner.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\nstaging_dir = \"/tmp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestCreateSample(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[mkvtoolnix]") {
		t.Fatalf("sample config missing mkvtoolnix section: %s", contents)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	defaults := config.Default()
	if cfg.Subtitles.MaxLineLength != defaults.Subtitles.MaxLineLength {
		t.Fatalf("sample max_line_length %d differs from default %d", cfg.Subtitles.MaxLineLength, defaults.Subtitles.MaxLineLength)
	}
	if cfg.MKVToolNix.MuxTimeout != defaults.MKVToolNix.MuxTimeout {
		t.Fatalf("sample mux_timeout %d differs from default %d", cfg.MKVToolNix.MuxTimeout, defaults.MKVToolNix.MuxTimeout)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"no audio languages", func(c *config.Config) { c.Languages.AllowedAudio = nil }},
		{"line length too small", func(c *config.Config) { c.Subtitles.MaxLineLength = 5 }},
		{"line length too large", func(c *config.Config) { c.Subtitles.MaxLineLength = 500 }},
		{"mux timeout", func(c *config.Config) { c.MKVToolNix.MuxTimeout = 0 }},
		{"identify timeout", func(c *config.Config) { c.MKVToolNix.IdentifyTimeout = -1 }},
		{"log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"state dir", func(c *config.Config) { c.Paths.StateDir = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
