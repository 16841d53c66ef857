package transcode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"vid2srt/internal/logging"
	"vid2srt/internal/media/ffprobe"
)

// CommandRunner executes an external command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Prober inspects a media file.
type Prober func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Options configures audio extraction.
type Options struct {
	FFmpegBinary  string
	FFprobeBinary string
	// Extension is the audio container extension without the dot, e.g. "mp3".
	Extension string
	Overwrite bool
	// Probe runs ffprobe first to reject sources without audio.
	Probe bool
}

// Extraction describes a successful extraction.
type Extraction struct {
	AudioPath string
	// MediaSeconds is the probed source duration, 0 when unknown.
	MediaSeconds float64
	AudioStreams int
	// SourceBytes is the container size reported by ffprobe, 0 when unknown.
	SourceBytes int64
	// AudioLanguage is the language tag of the default audio stream, falling
	// back to the first audio stream. Empty when untagged or not probed.
	AudioLanguage string
	// Reused is true when no new file was written: the source already was the
	// target audio file, or an existing output was kept because overwrite is off.
	Reused bool
}

// Transcoder extracts audio tracks with ffmpeg.
type Transcoder struct {
	opts     Options
	logger   *slog.Logger
	run      CommandRunner
	probe    Prober
	lookPath func(string) (string, error)
}

// New creates a Transcoder. Empty options fall back to ffmpeg, ffprobe and mp3.
func New(opts Options, logger *slog.Logger) *Transcoder {
	if strings.TrimSpace(opts.FFmpegBinary) == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(opts.FFprobeBinary) == "" {
		opts.FFprobeBinary = "ffprobe"
	}
	opts.Extension = strings.TrimPrefix(strings.TrimSpace(opts.Extension), ".")
	if opts.Extension == "" {
		opts.Extension = "mp3"
	}
	return &Transcoder{
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "transcode"),
		run:      runCommand,
		probe:    ffprobe.Inspect,
		lookPath: exec.LookPath,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (t *Transcoder) WithCommandRunner(runner CommandRunner) {
	t.run = runner
}

// WithProber sets a custom media prober (for testing).
func (t *Transcoder) WithProber(prober Prober) {
	t.probe = prober
}

// WithLookPath sets a custom binary resolver (for testing).
func (t *Transcoder) WithLookPath(lookPath func(string) (string, error)) {
	t.lookPath = lookPath
}

// AudioPath returns <video-without-extension>.<ext>.
func AudioPath(videoPath, ext string) string {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	return base + "." + strings.TrimPrefix(ext, ".")
}

// ExtractAudio writes the audio track of videoPath next to it and returns the
// audio file path.
func (t *Transcoder) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	result, err := t.Extract(ctx, videoPath)
	if err != nil {
		return "", err
	}
	return result.AudioPath, nil
}

// Extract is ExtractAudio plus the probe details gathered along the way.
func (t *Transcoder) Extract(ctx context.Context, videoPath string) (Extraction, error) {
	videoPath = strings.TrimSpace(videoPath)
	info, err := os.Stat(videoPath)
	if err != nil {
		return Extraction{}, &Error{Reason: ReasonSourceMissing, Source: videoPath, Err: err}
	}
	if info.IsDir() {
		return Extraction{}, &Error{Reason: ReasonSourceMissing, Source: videoPath, Detail: "path is a directory"}
	}

	var result Extraction
	if t.opts.Probe {
		probed, err := t.inspect(ctx, videoPath)
		if err != nil {
			return Extraction{}, err
		}
		result.MediaSeconds = probed.DurationSeconds()
		result.AudioStreams = probed.AudioStreamCount()
		result.SourceBytes = probed.SizeBytes()
		result.AudioLanguage = audioLanguage(probed.AudioStreams())
	}

	result.AudioPath = AudioPath(videoPath, t.opts.Extension)
	if sameFile(videoPath, result.AudioPath) {
		t.logger.Info("source is already an audio file; skipping extraction",
			logging.String("audio_path", result.AudioPath))
		result.Reused = true
		return result, nil
	}
	if !t.opts.Overwrite && nonEmptyFile(result.AudioPath) {
		t.logger.Info("reusing existing audio file",
			logging.String("audio_path", result.AudioPath),
			logging.String("reason", "transcode.overwrite is false"))
		result.Reused = true
		return result, nil
	}

	binary, err := t.lookPath(t.opts.FFmpegBinary)
	if err != nil {
		return Extraction{}, &Error{Reason: ReasonToolMissing, Source: videoPath, Detail: t.opts.FFmpegBinary, Err: err}
	}

	started := time.Now()
	output, err := t.run(ctx, binary, buildArgs(videoPath, result.AudioPath, t.opts.Overwrite)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Extraction{}, fmt.Errorf("extract audio: %w", ctxErr)
		}
		return Extraction{}, &Error{Reason: ReasonToolFailed, Source: videoPath, Detail: strings.TrimSpace(string(output)), Err: err}
	}
	if !nonEmptyFile(result.AudioPath) {
		return Extraction{}, &Error{Reason: ReasonNoOutput, Source: videoPath, Detail: result.AudioPath}
	}

	t.logger.Debug("ffmpeg finished",
		logging.String("audio_path", result.AudioPath),
		logging.Duration("elapsed", time.Since(started)))
	return result, nil
}

// inspect returns a typed error only when the source definitely has no audio.
// Probe failures are logged and extraction continues.
func (t *Transcoder) inspect(ctx context.Context, videoPath string) (ffprobe.Result, error) {
	if _, err := t.lookPath(t.opts.FFprobeBinary); err != nil {
		logging.WarnWithContext(t.logger, "ffprobe unavailable; skipping audio stream check", "ffprobe_missing",
			logging.String("binary", t.opts.FFprobeBinary),
			logging.String(logging.FieldErrorHint, "install ffprobe or set transcode.probe_source = false"),
			logging.String(logging.FieldImpact, "media duration unknown; subtitle duration check skipped"))
		return ffprobe.Result{}, nil
	}
	probed, err := t.probe(ctx, t.opts.FFprobeBinary, videoPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ffprobe.Result{}, fmt.Errorf("probe source: %w", ctxErr)
		}
		logging.WarnWithContext(t.logger, "ffprobe failed; continuing without stream details", "ffprobe_failed",
			logging.String("video_path", videoPath),
			logging.Error(err),
			logging.String(logging.FieldImpact, "media duration unknown; subtitle duration check skipped"))
		return ffprobe.Result{}, nil
	}
	if len(probed.Streams) > 0 && probed.AudioStreamCount() == 0 {
		return ffprobe.Result{}, &Error{
			Reason: ReasonNoAudioStream,
			Source: videoPath,
			Detail: fmt.Sprintf("%d stream(s), none audio", len(probed.Streams)),
		}
	}
	t.logger.Debug("source probed",
		logging.Int("audio_streams", probed.AudioStreamCount()),
		logging.Float64("duration_seconds", probed.DurationSeconds()),
		logging.Int64("size_bytes", probed.SizeBytes()))
	return probed, nil
}

func audioLanguage(streams []ffprobe.Stream) string {
	for _, stream := range streams {
		if stream.IsDefault() {
			return stream.Language()
		}
	}
	if len(streams) > 0 {
		return streams[0].Language()
	}
	return ""
}

func buildArgs(source, dest string, overwrite bool) []string {
	overwriteFlag := "-n"
	if overwrite {
		overwriteFlag = "-y"
	}
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		overwriteFlag,
		"-i", source,
		"-vn",
		dest,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

func nonEmptyFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	if errA != nil || errB != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// IsReason reports whether err is a transcode *Error with the given reason.
func IsReason(err error, reason Reason) bool {
	var terr *Error
	return errors.As(err, &terr) && terr.Reason == reason
}
