// Package deps reports whether the external programs vid2srt drives
// (ffmpeg, ffprobe, uvx) can be found on PATH.
package deps
