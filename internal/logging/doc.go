// Package logging assembles structured slog loggers and formatting helpers used
// across vid2srt.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the run ID and stage. Console output goes to stderr so stdout
// stays reserved for the transcript and the user-facing messages. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
