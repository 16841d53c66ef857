package speech

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"vid2srt/internal/logging"
	"vid2srt/internal/services"
)

// Recognizer converts an audio file into a transcript with timed segments.
type Recognizer interface {
	Transcribe(ctx context.Context, audioPath string) (Transcript, error)
}

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Client runs whisper or whisperx through uvx and reads back the JSON output.
type Client struct {
	cfg    Config
	logger *slog.Logger
	run    CommandRunner
}

// NewClient creates a Client. Zero-value fields take the package defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	cfg.Engine = strings.ToLower(strings.TrimSpace(cfg.Engine))
	if cfg.Engine == "" {
		cfg.Engine = EngineWhisper
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if strings.TrimSpace(cfg.UVXBinary) == "" {
		cfg.UVXBinary = UVXCommand
	}
	if cfg.VADMethod == "" {
		cfg.VADMethod = VADMethodSilero
	}
	c := &Client{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "speech"),
	}
	c.run = c.execCommand
	return c
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Client) WithCommandRunner(runner CommandRunner) {
	c.run = runner
}

// Engine returns the configured engine name for logging.
func (c *Client) Engine() string {
	return c.cfg.Engine
}

// Model returns the configured model name for logging.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Transcribe runs the recognizer on audioPath. The scratch directory holding
// the engine's output is removed before returning.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	const stage = "transcribe"
	if strings.TrimSpace(audioPath) == "" {
		return Transcript{}, services.Wrap(services.ErrValidation, stage, c.cfg.Engine, "audio path required", nil)
	}
	if _, err := os.Stat(audioPath); err != nil {
		return Transcript{}, services.Wrap(services.ErrNotFound, stage, c.cfg.Engine, "audio file unavailable", err)
	}

	workDir := c.cfg.WorkDir
	if workDir != "" {
		if err := os.MkdirAll(workDir, 0o755); err != nil {
			return Transcript{}, services.Wrap(services.ErrConfiguration, stage, "work dir", "create work directory", err)
		}
	}
	outputDir, err := os.MkdirTemp(workDir, "vid2srt-speech-")
	if err != nil {
		return Transcript{}, services.Wrap(services.ErrConfiguration, stage, "work dir", "create scratch directory", err)
	}
	defer func() {
		if err := os.RemoveAll(outputDir); err != nil {
			c.logger.Debug("remove scratch directory failed", logging.String("dir", outputDir), logging.Error(err))
		}
	}()

	args := c.buildArgs(audioPath, outputDir)
	c.logger.Info("running speech recognition",
		logging.String("engine", c.cfg.Engine),
		logging.String("model", c.cfg.Model),
		logging.Bool("cuda", c.cfg.CUDAEnabled),
		logging.String("audio_path", audioPath))
	c.logger.Debug("recognizer command", logging.String("command", c.cfg.UVXBinary+" "+strings.Join(redact(args), " ")))

	started := time.Now()
	if err := c.run(ctx, c.cfg.UVXBinary, args...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Transcript{}, fmt.Errorf("%s: %w", c.cfg.Engine, ctxErr)
		}
		return Transcript{}, services.Wrap(services.ErrExternalTool, stage, c.cfg.Engine, "recognizer failed", err)
	}

	jsonPath := filepath.Join(outputDir, strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))+".json")
	transcript, err := LoadTranscript(jsonPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Transcript{}, services.Wrap(services.ErrExternalTool, stage, c.cfg.Engine, "recognizer produced no JSON output", err)
		}
		return Transcript{}, services.Wrap(services.ErrExternalTool, stage, c.cfg.Engine, "read recognizer output", err)
	}
	if transcript.Language == "" {
		transcript.Language = c.cfg.Language
	}

	c.logger.Info("speech recognition finished",
		logging.Int("segments", len(transcript.Segments)),
		logging.String("language", transcript.Language),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)))
	return transcript, nil
}

func (c *Client) buildArgs(audioPath, outputDir string) []string {
	if c.cfg.Engine == EngineWhisperX {
		return c.buildWhisperXArgs(audioPath, outputDir)
	}
	return c.buildWhisperArgs(audioPath, outputDir)
}

func (c *Client) buildWhisperArgs(audioPath, outputDir string) []string {
	args := []string{
		"--from", WhisperPackage,
		"whisper",
		audioPath,
		"--model", c.cfg.Model,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--verbose", "False",
	}
	if c.cfg.Language != "" {
		args = append(args, "--language", c.cfg.Language)
	}
	if c.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		// Half precision is unsupported on CPU.
		args = append(args, "--device", CPUDevice, "--fp16", "False")
	}
	return args
}

func (c *Client) buildWhisperXArgs(audioPath, outputDir string) []string {
	args := make([]string, 0, 24)
	if c.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}
	args = append(args,
		"whisperx",
		audioPath,
		"--model", c.cfg.Model,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--vad_method", c.cfg.VADMethod,
	)
	if c.cfg.VADMethod == VADMethodPyannote && c.cfg.HFToken != "" {
		args = append(args, "--hf_token", c.cfg.HFToken)
	}
	if c.cfg.Language != "" {
		args = append(args, "--language", c.cfg.Language)
	}
	if c.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}
	return args
}

func (c *Client) execCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 defaults torch.load to weights_only, which breaks the
	// whisperx/pyannote checkpoints.
	if c.cfg.Engine == EngineWhisperX && os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, lastLines(string(output), 5))
	}
	return nil
}

// redact hides the Hugging Face token in logged command lines.
func redact(args []string) []string {
	out := append([]string(nil), args...)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "--hf_token" {
			out[i+1] = "***"
		}
	}
	return out
}

func lastLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
