package config

import (
	"fmt"
	"os"
	"strings"

	"vid2srt/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscode()
	c.normalizeSpeech()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	// The video path file stays relative so it resolves against the working
	// directory of each run.
	c.Paths.VideoPathFile = strings.TrimSpace(c.Paths.VideoPathFile)
	if c.Paths.VideoPathFile == "" {
		c.Paths.VideoPathFile = defaultVideoPathFile
	}
	if strings.HasPrefix(c.Paths.VideoPathFile, "~") {
		if c.Paths.VideoPathFile, err = expandPath(c.Paths.VideoPathFile); err != nil {
			return fmt.Errorf("paths.video_path_file: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscode() {
	c.Transcode.FFmpegBinary = strings.TrimSpace(c.Transcode.FFmpegBinary)
	if c.Transcode.FFmpegBinary == "" {
		c.Transcode.FFmpegBinary = defaultFFmpegBinary
	}
	c.Transcode.FFprobeBinary = strings.TrimSpace(c.Transcode.FFprobeBinary)
	if c.Transcode.FFprobeBinary == "" {
		c.Transcode.FFprobeBinary = defaultFFprobeBinary
	}
	ext := strings.ToLower(strings.TrimSpace(c.Transcode.AudioExtension))
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = defaultAudioExtension
	}
	c.Transcode.AudioExtension = ext
}

func (c *Config) normalizeSpeech() {
	c.Speech.Engine = strings.ToLower(strings.TrimSpace(c.Speech.Engine))
	if c.Speech.Engine == "" {
		c.Speech.Engine = defaultSpeechEngine
	}
	c.Speech.Model = strings.TrimSpace(c.Speech.Model)
	if c.Speech.Model == "" {
		c.Speech.Model = defaultSpeechModel
	}
	c.Speech.Language = language.Canonical(c.Speech.Language)
	c.Speech.UVXBinary = strings.TrimSpace(c.Speech.UVXBinary)
	if c.Speech.UVXBinary == "" {
		c.Speech.UVXBinary = defaultUVXBinary
	}
	c.Speech.VADMethod = strings.ToLower(strings.TrimSpace(c.Speech.VADMethod))
	if c.Speech.VADMethod == "" {
		c.Speech.VADMethod = defaultVADMethod
	}
	c.Speech.HFToken = strings.TrimSpace(c.Speech.HFToken)
	for _, key := range []string{"HUGGING_FACE_HUB_TOKEN", "HF_TOKEN"} {
		if c.Speech.HFToken != "" {
			break
		}
		c.Speech.HFToken = strings.TrimSpace(os.Getenv(key))
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("VID2SRT_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
