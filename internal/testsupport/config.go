package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mkvcleaner/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DefaultOutputDir = filepath.Join(base, "fallback")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAudioLanguages sets the allowed audio languages and the original one.
func WithAudioLanguages(original string, allowed ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Languages.AllowedAudio = allowed
		b.cfg.Languages.OriginalAudio = original
	}
}

// WithSubtitleLanguages sets the allowed subtitle languages.
func WithSubtitleLanguages(allowed ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Languages.AllowedSubtitle = allowed
	}
}

// WithExtraction toggles subtitle extraction and persistence.
func WithExtraction(extract, save bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Subtitles.Extract = extract
		b.cfg.Subtitles.SaveExtracted = save
	}
}

// WithStubbedBinaries writes stub executables for the provided names,
// prepends them to PATH, and points the MKVToolNix paths at them. If names
// is empty, mkvmerge and mkvextract are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"mkvmerge", "mkvextract"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
			switch name {
			case "mkvmerge":
				b.cfg.MKVToolNix.MkvmergePath = target
			case "mkvextract":
				b.cfg.MKVToolNix.MkvextractPath = target
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
