// Package pipeline runs one video-to-subtitle conversion end to end.
//
// A run reads the video path from the configured path file, extracts the
// audio track, transcribes it, and writes a plain transcript plus an SRT
// file next to the audio. A missing or empty path file and an extraction
// failure are halts: the run stops cleanly with a message and Halted
// reports true. Every other failure is returned as a pipeline error. Runs
// sharing a state directory are serialized through a file lock and, when
// enabled, recorded in the history database.
package pipeline
