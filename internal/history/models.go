package history

import "time"

// Status is the lifecycle state of a recorded run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusHalted    Status = "halted"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the run has finished.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusHalted, StatusFailed:
		return true
	default:
		return false
	}
}

// Run is one pipeline invocation.
type Run struct {
	ID             string
	VideoPath      string
	AudioPath      string
	TranscriptPath string
	SubtitlePath   string
	Status         Status
	FailureReason  string
	Message        string
	SegmentCount   int
	Language       string
	MediaSeconds   float64
	StartedAt      time.Time
	FinishedAt     *time.Time
}

// Duration returns the elapsed wall time, or zero while the run is open.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
