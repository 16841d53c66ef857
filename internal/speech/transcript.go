package speech

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"vid2srt/internal/subtitles"
)

// Transcript is the recognizer output for one audio file.
type Transcript struct {
	// Text is the full transcript exactly as the engine reported it.
	Text string
	// Language is the detected language, or the configured hint.
	Language string
	Segments []subtitles.Segment
}

type payloadSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// payload covers the JSON written by both whisper and whisperx.
type payload struct {
	Text     *string          `json:"text"`
	Language string           `json:"language"`
	Segments []payloadSegment `json:"segments"`
}

// LoadTranscript reads a recognizer JSON file. When the file has no top-level
// text, the segment texts are concatenated in order.
func LoadTranscript(jsonPath string) (Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return Transcript{}, err
	}
	return ParseTranscript(data)
}

// ParseTranscript decodes recognizer JSON output.
func ParseTranscript(data []byte) (Transcript, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Transcript{}, fmt.Errorf("parse recognizer json: %w", err)
	}

	transcript := Transcript{Language: strings.TrimSpace(p.Language)}
	transcript.Segments = make([]subtitles.Segment, 0, len(p.Segments))
	var joined strings.Builder
	for _, seg := range p.Segments {
		start := max(seg.Start, 0)
		end := max(seg.End, start)
		transcript.Segments = append(transcript.Segments, subtitles.Segment{Start: start, End: end, Text: seg.Text})
		joined.WriteString(seg.Text)
	}
	if p.Text != nil {
		transcript.Text = *p.Text
	} else {
		transcript.Text = joined.String()
	}
	return transcript, nil
}
