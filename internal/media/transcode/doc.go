// Package transcode extracts the audio track of a video with ffmpeg.
//
// The audio is written next to the source as <video-without-extension>.<ext>.
// Every failure other than cancellation is a *Error whose Reason tells
// callers what went wrong without parsing tool output.
package transcode
