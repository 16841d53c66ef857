package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"vid2srt/internal/logging"
	"vid2srt/internal/services"
	"vid2srt/internal/speech"
	"vid2srt/internal/subtitles"
)

// OutputBase returns the audio path without its extension; the transcript
// and subtitle files are written as <base>.txt and <base>.srt.
func OutputBase(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
}

func (p *Pipeline) writeOutputs(ctx context.Context, result Result, transcript speech.Transcript) (Result, error) {
	base := OutputBase(result.AudioPath)

	txtPath := base + ".txt"
	if err := os.WriteFile(txtPath, []byte(transcript.Text), 0o644); err != nil {
		return result, stageError(services.ErrOutput, StageWrite, "write transcript", err)
	}
	result.TranscriptPath = txtPath
	p.printf("Transcription saved to: %s\n", txtPath)

	srtPath := base + ".srt"
	if err := subtitles.WriteFile(srtPath, transcript.Segments); err != nil {
		return result, stageError(services.ErrOutput, StageWrite, "write subtitles", err)
	}
	result.SubtitlePath = srtPath
	p.printf("Subtitles saved to: %s\n", srtPath)

	logging.WithContext(ctx, p.logger).Debug("outputs written",
		logging.String("transcript_path", txtPath),
		logging.String("subtitle_path", srtPath),
		logging.Int("segments", len(transcript.Segments)),
	)
	return result, nil
}

func (p *Pipeline) validateSubtitles(ctx context.Context, result Result) []string {
	issues := subtitles.Validate(result.SubtitlePath, result.MediaSeconds)
	if len(issues) == 0 {
		return nil
	}
	logger := logging.WithContext(ctx, p.logger)
	for _, issue := range issues {
		logging.WarnWithContext(logger, "subtitle validation issue", "subtitle_validation",
			logging.String("issue", issue),
			logging.String("subtitle_path", result.SubtitlePath),
			logging.String(logging.FieldErrorHint, "review the subtitle file before use"),
			logging.String(logging.FieldImpact, "subtitles may be empty or mistimed"),
		)
	}
	return issues
}

// cleanupAudio removes the extracted audio when keep_audio is off. Audio
// that extraction reused is never removed.
func (p *Pipeline) cleanupAudio(ctx context.Context, result Result) bool {
	if p.cfg.Transcode.KeepAudio || result.AudioReused || result.AudioPath == "" {
		return false
	}
	logger := logging.WithContext(ctx, p.logger)
	if err := os.Remove(result.AudioPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.WarnWithContext(logger, "remove extracted audio failed", "audio_cleanup",
			logging.String("audio_path", result.AudioPath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the audio file manually"),
			logging.String(logging.FieldImpact, "audio file left on disk"),
		)
		return false
	}
	logger.Debug("extracted audio removed", logging.String("audio_path", result.AudioPath))
	return true
}
