// Package subtitles turns timed transcript segments into SubRip documents.
//
// FormatTimestamp and Write are pure: the same segments always produce the
// same bytes. Validate re-reads a written file and reports problems as issue
// codes so callers can log them without failing the run.
package subtitles
