package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLanguages(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateMKVToolNix(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DefaultOutputDir == "" {
		return errors.New("paths.default_output_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateLanguages() error {
	if len(c.Languages.AllowedAudio) == 0 {
		return errors.New("languages.allowed_audio must include at least one language")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.MaxLineLength < minMaxLineLength || c.Subtitles.MaxLineLength > maxMaxLineLength {
		return fmt.Errorf("subtitles.max_line_length must be between %d and %d", minMaxLineLength, maxMaxLineLength)
	}
	return nil
}

func (c *Config) validateMKVToolNix() error {
	return ensurePositiveMap(map[string]int{
		"mkvtoolnix.identify_timeout": c.MKVToolNix.IdentifyTimeout,
		"mkvtoolnix.extract_timeout":  c.MKVToolNix.ExtractTimeout,
		"mkvtoolnix.mux_timeout":      c.MKVToolNix.MuxTimeout,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
