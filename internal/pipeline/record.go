package pipeline

import (
	"context"
	"errors"

	"vid2srt/internal/history"
	"vid2srt/internal/logging"
	"vid2srt/internal/media/transcode"
	"vid2srt/internal/services"
)

// record tracks the history entry for a run. A nil store or a failed insert
// leaves run nil and the record only supplies a run ID.
type record struct {
	p     *Pipeline
	runID string
	run   *history.Run
}

func (p *Pipeline) beginRecord(ctx context.Context, videoPath string) *record {
	rec := &record{p: p}
	if p.history != nil {
		run, err := p.history.Begin(ctx, videoPath)
		if err != nil {
			logging.WarnWithContext(p.logger, "history record unavailable", "history_begin",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check history.path or disable history"),
				logging.String(logging.FieldImpact, "run will not appear in vid2srt history"),
			)
		} else {
			rec.run = run
			rec.runID = run.ID
		}
	}
	if rec.runID == "" {
		rec.runID = newRunID()
	}
	return rec
}

func (r *record) id() string {
	return r.runID
}

func (r *record) finish(ctx context.Context, result Result, runErr error) {
	if r.run == nil {
		return
	}
	r.run.AudioPath = result.AudioPath
	r.run.TranscriptPath = result.TranscriptPath
	r.run.SubtitlePath = result.SubtitlePath
	r.run.SegmentCount = result.Segments
	r.run.Language = result.Language
	r.run.MediaSeconds = result.MediaSeconds

	// The record must land even when the run was cancelled.
	ctx = context.WithoutCancel(ctx)
	store := r.p.history

	var err error
	var terr *transcode.Error
	switch {
	case runErr == nil:
		err = store.Complete(ctx, r.run)
	case errors.As(runErr, &terr):
		err = store.Halt(ctx, r.run, string(terr.Reason), runErr.Error())
	default:
		err = store.Fail(ctx, r.run, services.FailureReason(runErr), runErr.Error())
	}
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.p.logger), "history update failed", "history_finish",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run history shows a stale status"),
		)
	}
}
