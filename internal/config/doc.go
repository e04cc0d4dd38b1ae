// Package config loads, normalizes, and validates mkvcleaner configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MKVCLEANER_MKVMERGE and MKVCLEANER_OUTPUT_DIR. Language preferences are
// normalized to the canonical three-letter codes used for track matching.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical language codes, and clear validation errors.
package config
