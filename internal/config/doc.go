// Package config loads, normalizes, and validates vid2srt configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HF_TOKEN and VID2SRT_LOG_LEVEL. Every run works without a config file; the
// file only overrides the defaults.
package config
