package transcode

import (
	"fmt"
	"strings"
)

// Reason classifies why audio extraction failed.
type Reason string

const (
	ReasonSourceMissing Reason = "source_missing"
	ReasonNoAudioStream Reason = "no_audio_stream"
	ReasonToolMissing   Reason = "tool_missing"
	ReasonToolFailed    Reason = "tool_failed"
	ReasonNoOutput      Reason = "no_output"
)

// Error is returned by Extract and ExtractAudio for every extraction failure
// except context cancellation.
type Error struct {
	Reason Reason
	Source string
	// Detail holds the trimmed tool output or a short explanation.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "extract audio from %s: %s", e.Source, e.Reason)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
