package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mkvcleaner/internal/deps"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains output and state directory configuration.
type Paths struct {
	OutputDir        string `toml:"output_dir"`
	DefaultOutputDir string `toml:"default_output_dir"`
	OutputSubdir     string `toml:"output_subdir"`
	LogDir           string `toml:"log_dir"`
	StateDir         string `toml:"state_dir"`
}

// Languages holds the track selection preferences. All values are
// normalized to canonical three-letter codes during Load.
type Languages struct {
	AllowedAudio     []string `toml:"allowed_audio"`
	AllowedSubtitle  []string `toml:"allowed_subtitle"`
	DefaultAudio     string   `toml:"default_audio"`
	DefaultSubtitle  string   `toml:"default_subtitle"`
	OriginalAudio    string   `toml:"original_audio"`
	OriginalSubtitle string   `toml:"original_subtitle"`
}

// Subtitles controls extraction and SRT normalization.
type Subtitles struct {
	Extract       bool `toml:"extract"`
	SaveExtracted bool `toml:"save_extracted"`
	MaxLineLength int  `toml:"max_line_length"`
}

// MKVToolNix locates the external tools and bounds their run time (seconds).
type MKVToolNix struct {
	MkvmergePath    string `toml:"mkvmerge_path"`
	MkvextractPath  string `toml:"mkvextract_path"`
	IdentifyTimeout int    `toml:"identify_timeout"`
	ExtractTimeout  int    `toml:"extract_timeout"`
	MuxTimeout      int    `toml:"mux_timeout"`
}

// History controls the processed-file database.
type History struct {
	Enabled       bool `toml:"enabled"`
	SkipProcessed bool `toml:"skip_processed"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mkvcleaner.
//
// Configuration sections by subsystem:
//   - Paths: output, log, and state directories
//   - Languages: which audio/subtitle tracks survive and how they are flagged
//   - Subtitles: extraction, SRT conversion, and line wrapping
//   - MKVToolNix: tool locations and timeouts
//   - History: processed-file tracking
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Languages  Languages  `toml:"languages"`
	Subtitles  Subtitles  `toml:"subtitles"`
	MKVToolNix MKVToolNix `toml:"mkvtoolnix"`
	History    History    `toml:"history"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and state directories. Output
// directories are probed per file at processing time instead.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// MkvmergeBinary returns the mkvmerge executable, resolving PATH and the
// platform install locations when no explicit path is configured.
func (c *Config) MkvmergeBinary() string {
	return deps.ResolveMkvmerge(c.MKVToolNix.MkvmergePath)
}

// MkvextractBinary returns the mkvextract executable. Without an explicit
// path it is looked up next to mkvmerge first.
func (c *Config) MkvextractBinary() string {
	return deps.ResolveMkvextract(c.MKVToolNix.MkvextractPath, c.MkvmergeBinary())
}

// HistoryPath returns the processed-file database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, historyFileName)
}

// LogFilePath returns the application log file location.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, logFileName)
}

// IdentifyTimeout returns the mkvmerge -J deadline.
func (c *Config) IdentifyTimeout() time.Duration {
	return time.Duration(c.MKVToolNix.IdentifyTimeout) * time.Second
}

// ExtractTimeout returns the per-track mkvextract deadline.
func (c *Config) ExtractTimeout() time.Duration {
	return time.Duration(c.MKVToolNix.ExtractTimeout) * time.Second
}

// MuxTimeout returns the mkvmerge remux deadline.
func (c *Config) MuxTimeout() time.Duration {
	return time.Duration(c.MKVToolNix.MuxTimeout) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
