package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const secondsPerDay = 24 * 60 * 60

// Segment is one timed span of recognized speech. Start and End are seconds
// from the beginning of the media.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Cue is a single numbered SubRip record.
type Cue struct {
	Index int
	Start string
	End   string
	Text  string
}

// FormatTimestamp renders seconds as HH:MM:SS,mmm. Hours wrap at 24 and
// milliseconds are truncated, never rounded into the next second. Only the
// fractional part is resolved to whole microseconds, so decimal inputs such as
// 3599.999 keep their last millisecond despite binary float error, and the
// fraction is capped below one second so it never carries into the whole
// seconds. Negative and non-finite input renders as 00:00:00,000.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	seconds = math.Mod(seconds, secondsPerDay)
	whole := math.Floor(seconds)
	micros := min(int64(math.Round((seconds-whole)*1e6)), 999_999)
	millis := micros / 1000
	total := int64(whole)
	hours := (total / 3600) % 24
	minutes := (total / 60) % 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// BuildCues numbers segments from 1 in input order, one cue per segment.
func BuildCues(segments []Segment) []Cue {
	if len(segments) == 0 {
		return nil
	}
	cues := make([]Cue, len(segments))
	for i, seg := range segments {
		cues[i] = Cue{
			Index: i + 1,
			Start: FormatTimestamp(seg.Start),
			End:   FormatTimestamp(seg.End),
			Text:  strings.TrimSpace(seg.Text),
		}
	}
	return cues
}

// Write serializes segments as SubRip to w. Every cue, including the last,
// is followed by a blank line. Empty input writes nothing.
func Write(w io.Writer, segments []Segment) error {
	for _, cue := range BuildCues(segments) {
		if _, err := io.WriteString(w, formatCue(cue)); err != nil {
			return fmt.Errorf("write cue %d: %w", cue.Index, err)
		}
	}
	return nil
}

// Render returns the SubRip document for segments.
func Render(segments []Segment) string {
	var b strings.Builder
	_ = Write(&b, segments)
	return b.String()
}

// WriteFile creates or truncates path and writes the SubRip document to it.
func WriteFile(path string, segments []Segment) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create srt: %w", err)
	}
	buf := bufio.NewWriter(file)
	if err := Write(buf, segments); err != nil {
		_ = file.Close()
		return err
	}
	if err := buf.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush srt: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close srt: %w", err)
	}
	return nil
}

func formatCue(cue Cue) string {
	var b strings.Builder
	b.Grow(len(cue.Text) + 40)
	b.WriteString(strconv.Itoa(cue.Index))
	b.WriteByte('\n')
	b.WriteString(cue.Start)
	b.WriteString(" --> ")
	b.WriteString(cue.End)
	b.WriteByte('\n')
	b.WriteString(cue.Text)
	b.WriteString("\n\n")
	return b.String()
}
