package config

import (
	"fmt"
	"os"
	"strings"

	"mkvcleaner/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLanguages()
	c.normalizeSubtitles()
	if err := c.normalizeMKVToolNix(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		if value, ok := os.LookupEnv(envOutputDir); ok {
			c.Paths.OutputDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DefaultOutputDir) == "" {
		c.Paths.DefaultOutputDir = defaultFallbackOutput
	}
	if c.Paths.DefaultOutputDir, err = expandPath(c.Paths.DefaultOutputDir); err != nil {
		return fmt.Errorf("paths.default_output_dir: %w", err)
	}
	c.Paths.OutputSubdir = strings.Trim(strings.TrimSpace(c.Paths.OutputSubdir), `/\`)
	if c.Paths.OutputSubdir == "" {
		c.Paths.OutputSubdir = defaultOutputSubdir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLanguages() {
	c.Languages.AllowedAudio = language.NormalizeList(c.Languages.AllowedAudio)
	c.Languages.AllowedSubtitle = language.NormalizeList(c.Languages.AllowedSubtitle)
	c.Languages.DefaultAudio = normalizeSingle(c.Languages.DefaultAudio)
	c.Languages.DefaultSubtitle = normalizeSingle(c.Languages.DefaultSubtitle)
	c.Languages.OriginalAudio = normalizeSingle(c.Languages.OriginalAudio)
	c.Languages.OriginalSubtitle = normalizeSingle(c.Languages.OriginalSubtitle)
}

// normalizeSingle keeps an empty preference empty so "no default" stays
// distinguishable from "und".
func normalizeSingle(code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}
	return language.Normalize(code)
}

func (c *Config) normalizeSubtitles() {
	if c.Subtitles.MaxLineLength == 0 {
		c.Subtitles.MaxLineLength = defaultMaxLineLength
	}
	if c.Subtitles.SaveExtracted {
		c.Subtitles.Extract = true
	}
}

func (c *Config) normalizeMKVToolNix() error {
	var err error
	if strings.TrimSpace(c.MKVToolNix.MkvmergePath) == "" {
		if value, ok := os.LookupEnv(envMkvmergePath); ok {
			c.MKVToolNix.MkvmergePath = value
		}
	}
	if strings.TrimSpace(c.MKVToolNix.MkvextractPath) == "" {
		if value, ok := os.LookupEnv(envMkvextractPath); ok {
			c.MKVToolNix.MkvextractPath = value
		}
	}
	if c.MKVToolNix.MkvmergePath, err = expandToolPath(c.MKVToolNix.MkvmergePath); err != nil {
		return fmt.Errorf("mkvtoolnix.mkvmerge_path: %w", err)
	}
	if c.MKVToolNix.MkvextractPath, err = expandToolPath(c.MKVToolNix.MkvextractPath); err != nil {
		return fmt.Errorf("mkvtoolnix.mkvextract_path: %w", err)
	}
	if c.MKVToolNix.IdentifyTimeout == 0 {
		c.MKVToolNix.IdentifyTimeout = defaultIdentifyTimeout
	}
	if c.MKVToolNix.ExtractTimeout == 0 {
		c.MKVToolNix.ExtractTimeout = defaultExtractTimeout
	}
	if c.MKVToolNix.MuxTimeout == 0 {
		c.MKVToolNix.MuxTimeout = defaultMuxTimeout
	}
	return nil
}

// expandToolPath expands values that look like paths and leaves bare command
// names for PATH lookup.
func expandToolPath(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || !strings.ContainsAny(value, `/\~`) {
		return value, nil
	}
	return expandPath(value)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
