// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect runs ffprobe; Parse decodes an already captured payload. Helper
// methods on Result expose the audio streams and the media duration used by
// audio extraction and subtitle validation.
package ffprobe
