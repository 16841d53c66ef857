package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vid2srt/internal/history"
	"vid2srt/internal/logging"
	"vid2srt/internal/media/transcode"
	"vid2srt/internal/pipeline"
	"vid2srt/internal/preflight"
	"vid2srt/internal/speech"
)

func runPipeline(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, closeLogs, err := ctx.logger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = closeLogs() }()

	if missing := missingDependencies(preflight.CheckSystemDeps(cfg)); len(missing) > 0 {
		logging.WarnWithContext(logger, "required dependencies not found", "dependency_missing",
			logging.String("missing", strings.Join(missing, ", ")),
			logging.String(logging.FieldErrorHint, "run vid2srt check for details"),
			logging.String(logging.FieldImpact, "the run will fail at the step that needs them"),
		)
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.HistoryPath())
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
	}

	transcoder := transcode.New(transcode.Options{
		FFmpegBinary:  cfg.Transcode.FFmpegBinary,
		FFprobeBinary: cfg.Transcode.FFprobeBinary,
		Extension:     cfg.Transcode.AudioExtension,
		Overwrite:     cfg.Transcode.Overwrite,
		Probe:         cfg.Transcode.ProbeSource,
	}, logger)
	recognizer := speech.NewClient(speech.Config{
		Engine:      cfg.Speech.Engine,
		Model:       cfg.Speech.Model,
		Language:    cfg.Speech.Language,
		CUDAEnabled: cfg.Speech.CUDAEnabled,
		VADMethod:   cfg.Speech.VADMethod,
		HFToken:     cfg.Speech.HFToken,
		UVXBinary:   cfg.Speech.UVXBinary,
		WorkDir:     cfg.Paths.WorkDir,
	}, logger)

	p := pipeline.New(cfg, transcoder, recognizer, store, logger)
	p.WithOutput(cmd.OutOrStdout())

	_, err = p.Run(cmd.Context())
	if pipeline.Halted(err) {
		return nil
	}
	return err
}
