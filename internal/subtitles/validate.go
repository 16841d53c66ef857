package subtitles

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// endTolerance absorbs recognizer segments that overrun the decoded duration slightly.
const endTolerance = 2.0

// Issue codes reported by Validate.
const (
	IssueReadError      = "read_error"
	IssueEmptyFile      = "empty_subtitle_file"
	IssueNoTimestamps   = "no_valid_timestamps"
	IssueEndsAfterMedia = "ends_after_media"
)

// ParseTimestamp converts HH:MM:SS,mmm (or HH:MM:SS.mmm) to seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || millis < 0 || millis > 999 {
		return 0, fmt.Errorf("timestamp out of range %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// CountCues returns the number of non-blank records in a SubRip document.
func CountCues(content string) int {
	content = strings.TrimSpace(normalizeNewlines(content))
	if content == "" {
		return 0
	}
	count := 0
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

// Bounds returns the earliest start and latest end across all parseable
// timing lines. ok is false when no timing line could be parsed.
func Bounds(content string) (first, last float64, ok bool) {
	first = math.Inf(1)
	for _, line := range strings.Split(normalizeNewlines(content), "\n") {
		start, end, found := strings.Cut(line, "-->")
		if !found {
			continue
		}
		startSeconds, errStart := ParseTimestamp(start)
		endSeconds, errEnd := ParseTimestamp(end)
		if errStart != nil || errEnd != nil {
			continue
		}
		ok = true
		first = math.Min(first, startSeconds)
		last = math.Max(last, endSeconds)
	}
	if !ok {
		return 0, 0, false
	}
	return first, last, true
}

// Validate checks a written SubRip file. mediaSeconds enables the duration
// check when positive. An empty result means the file looks sound.
func Validate(path string, mediaSeconds float64) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", IssueReadError, err)}
	}
	content := string(data)
	if CountCues(content) == 0 {
		return []string{IssueEmptyFile}
	}
	_, last, ok := Bounds(content)
	if !ok {
		return []string{IssueNoTimestamps}
	}
	var issues []string
	if mediaSeconds > 0 && last > mediaSeconds+endTolerance {
		issues = append(issues, fmt.Sprintf("%s: last=%.3fs media=%.3fs", IssueEndsAfterMedia, last, mediaSeconds))
	}
	return issues
}

func normalizeNewlines(content string) string {
	return strings.ReplaceAll(content, "\r\n", "\n")
}
