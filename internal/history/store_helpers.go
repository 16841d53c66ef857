package history

import (
	"database/sql"
	"errors"
	"time"
)

// timestampLayout is fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run            Run
		audioPath      sql.NullString
		transcriptPath sql.NullString
		subtitlePath   sql.NullString
		status         string
		reason         sql.NullString
		message        sql.NullString
		lang           sql.NullString
		startedRaw     string
		finishedRaw    sql.NullString
	)
	if err := row.Scan(
		&run.ID,
		&run.VideoPath,
		&audioPath,
		&transcriptPath,
		&subtitlePath,
		&status,
		&reason,
		&message,
		&run.SegmentCount,
		&lang,
		&run.MediaSeconds,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}
	run.AudioPath = audioPath.String
	run.TranscriptPath = transcriptPath.String
	run.SubtitlePath = subtitlePath.String
	run.Status = Status(status)
	run.FailureReason = reason.String
	run.Message = message.String
	run.Language = lang.String
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(timestampLayout)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
