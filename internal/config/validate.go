package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateSpeech(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.VideoPathFile) == "" {
		return errors.New("paths.video_path_file must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateTranscode() error {
	ext := c.Transcode.AudioExtension
	if strings.ContainsAny(ext, `/\ `) || filepath.Ext("x."+ext) != "."+ext {
		return fmt.Errorf("transcode.audio_extension %q is not a plain file extension", ext)
	}
	return nil
}

func (c *Config) validateSpeech() error {
	switch c.Speech.Engine {
	case EngineWhisper, EngineWhisperX:
	default:
		return fmt.Errorf("speech.engine must be %q or %q, got %q", EngineWhisper, EngineWhisperX, c.Speech.Engine)
	}
	switch c.Speech.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("speech.vad_method must be \"silero\" or \"pyannote\", got %q", c.Speech.VADMethod)
	}
	if c.Speech.Engine == EngineWhisperX && c.Speech.VADMethod == "pyannote" && c.Speech.HFToken == "" {
		return errors.New("speech.hf_token must be set when speech.vad_method is \"pyannote\" (or set HF_TOKEN)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
