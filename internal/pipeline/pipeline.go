package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"vid2srt/internal/config"
	"vid2srt/internal/history"
	"vid2srt/internal/logging"
	"vid2srt/internal/media/transcode"
	"vid2srt/internal/services"
	"vid2srt/internal/speech"
)

// Stage names used for logging context and error messages.
const (
	StageReadPath   = "read_path"
	StageTranscode  = "transcode"
	StageTranscribe = "transcribe"
	StageWrite      = "write_outputs"
	StageValidate   = "validate"
	StageCleanup    = "cleanup"
)

// Transcoder extracts the audio track of a video file.
type Transcoder interface {
	Extract(ctx context.Context, videoPath string) (transcode.Extraction, error)
}

// Result describes a finished run.
type Result struct {
	RunID          string
	VideoPath      string
	AudioPath      string
	TranscriptPath string
	SubtitlePath   string
	Segments       int
	Language       string
	MediaSeconds   float64
	// AudioReused is true when extraction kept an existing audio file.
	AudioReused  bool
	AudioRemoved bool
	// Warnings holds subtitle validation issue codes.
	Warnings []string
	Duration time.Duration
}

// Pipeline wires the transcoder, recognizer and history store for a run.
type Pipeline struct {
	cfg        *config.Config
	transcoder Transcoder
	recognizer speech.Recognizer
	history    *history.Store
	logger     *slog.Logger
	out        io.Writer
}

// New builds a Pipeline. store may be nil to skip run history.
func New(cfg *config.Config, transcoder Transcoder, recognizer speech.Recognizer, store *history.Store, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		transcoder: transcoder,
		recognizer: recognizer,
		history:    store,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		out:        os.Stdout,
	}
}

// WithOutput redirects user-facing messages, which default to stdout.
func (p *Pipeline) WithOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	p.out = w
}

// Halted reports whether err ended a run cleanly: the path file was missing
// or empty, or audio extraction failed.
func Halted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrVideoPathMissing) || errors.Is(err, ErrVideoPathEmpty) {
		return true
	}
	var terr *transcode.Error
	return errors.As(err, &terr)
}

// Run executes one conversion.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	if p.cfg == nil || p.transcoder == nil || p.recognizer == nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "", "pipeline", "config, transcoder and recognizer are required", nil)
	}
	started := time.Now()

	lock, err := AcquireLock(p.cfg.LockPath())
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			p.logger.Warn("release run lock failed", logging.String("lock", lock.Path()), logging.Error(err))
		}
	}()

	pathFile := p.cfg.Paths.VideoPathFile
	videoPath, err := ReadVideoPath(pathFile)
	if err != nil {
		if errors.Is(err, ErrVideoPathMissing) {
			p.printf("File not found: %s\n", pathFile)
		}
		if Halted(err) {
			p.printf("No video path available. Please check '%s'.\n", pathFile)
			p.logger.Info("run halted", logging.String(logging.FieldStage, StageReadPath), logging.Error(err))
			return Result{}, err
		}
		return Result{}, stageError(services.ErrConfiguration, StageReadPath, "read video path", err)
	}

	rec := p.beginRecord(ctx, videoPath)
	ctx = services.WithRunID(ctx, rec.id())
	result := Result{RunID: rec.id(), VideoPath: videoPath}

	result, err = p.execute(ctx, result)
	result.Duration = time.Since(started)
	rec.finish(ctx, result, err)

	logger := logging.WithContext(ctx, p.logger)
	switch {
	case err == nil:
		logger.Info("run completed",
			logging.String("subtitle_path", result.SubtitlePath),
			logging.Int("segments", result.Segments),
			logging.String("language", result.Language),
			logging.Duration("elapsed", result.Duration),
		)
	case Halted(err):
		logger.Info("run halted", logging.Error(err))
	default:
		logging.ErrorWithContext(logger, "run failed", "run_failed",
			logging.String("reason", services.FailureReason(err)),
			logging.String(logging.FieldErrorHint, failureHint(err)),
			logging.Error(err),
		)
	}
	return result, err
}

func failureHint(err error) string {
	switch {
	case errors.Is(err, services.ErrConfiguration):
		return "fix the config file and rerun"
	case errors.Is(err, services.ErrValidation):
		return "check the video path file and the source video"
	case errors.Is(err, services.ErrExternalTool):
		return "run vid2srt check to verify ffmpeg and the speech engine"
	case errors.Is(err, services.ErrOutput):
		return "check free space and permissions in the output directory"
	default:
		return "check logs for details"
	}
}

func (p *Pipeline) execute(ctx context.Context, result Result) (Result, error) {
	stageCtx := services.WithStage(ctx, StageTranscode)
	extraction, err := p.transcoder.Extract(stageCtx, result.VideoPath)
	if err != nil {
		var terr *transcode.Error
		if errors.As(err, &terr) {
			p.printf("Error converting video to audio: %s\n", terr.Error())
			return result, err
		}
		return result, stageError(services.ErrExternalTool, StageTranscode, "extract audio", err)
	}
	result.AudioPath = extraction.AudioPath
	result.MediaSeconds = extraction.MediaSeconds
	result.AudioReused = extraction.Reused
	p.printf("Audio extracted: %s\n", extraction.AudioPath)
	logging.WithContext(stageCtx, p.logger).Info("audio ready",
		logging.String("audio_path", extraction.AudioPath),
		logging.Float64("media_seconds", extraction.MediaSeconds),
		logging.Int64("source_bytes", extraction.SourceBytes),
		logging.String("audio_language", extraction.AudioLanguage),
		logging.Bool("reused", extraction.Reused),
	)

	stageCtx = services.WithStage(ctx, StageTranscribe)
	transcript, err := p.recognizer.Transcribe(stageCtx, extraction.AudioPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, stageError(services.ErrExternalTool, StageTranscribe, "speech recognition", err)
	}
	result.Segments = len(transcript.Segments)
	result.Language = transcript.Language
	p.printf("Full transcription:\n%s\n", transcript.Text)

	stageCtx = services.WithStage(ctx, StageWrite)
	if result, err = p.writeOutputs(stageCtx, result, transcript); err != nil {
		return result, err
	}

	stageCtx = services.WithStage(ctx, StageValidate)
	result.Warnings = p.validateSubtitles(stageCtx, result)

	stageCtx = services.WithStage(ctx, StageCleanup)
	result.AudioRemoved = p.cleanupAudio(stageCtx, result)
	return result, nil
}

func (p *Pipeline) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func stageError(marker error, stage, operation string, err error) error {
	return fmt.Errorf("pipeline: %w", services.Wrap(marker, stage, operation, "", err))
}

func newRunID() string {
	return uuid.NewString()
}
