package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vid2srt/internal/language"
	"vid2srt/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report dependency, directory and recognizer settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			statuses := preflight.CheckSystemDeps(cfg)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range dependencyLines(statuses, colorize) {
				fmt.Fprintln(out, line)
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Paths", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(cfg)
			for _, line := range pathLines(results, colorize) {
				fmt.Fprintln(out, line)
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Recognizer", colorize) {
				fmt.Fprintln(out, line)
			}
			lang := "auto-detect"
			if cfg.Speech.Language != "" {
				lang = fmt.Sprintf("%s (%s)", language.DisplayName(cfg.Speech.Language), cfg.Speech.Language)
			}
			fmt.Fprintln(out, renderStatusLine("Engine", statusInfo, cfg.Speech.Engine, colorize))
			fmt.Fprintln(out, renderStatusLine("Model", statusInfo, cfg.Speech.Model, colorize))
			fmt.Fprintln(out, renderStatusLine("Language", statusInfo, lang, colorize))
			fmt.Fprintln(out, renderStatusLine("CUDA", statusInfo, yesNo(cfg.Speech.CUDAEnabled), colorize))
			fmt.Fprintln(out, renderStatusLine("Keep audio", statusInfo, yesNo(cfg.Transcode.KeepAudio), colorize))
			fmt.Fprintln(out, renderStatusLine("History", statusInfo, yesNo(cfg.History.Enabled), colorize))

			if missing := missingDependencies(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required dependencies: %s", strings.Join(missing, ", "))
			}
			for _, result := range results {
				if !result.Passed && result.Name != preflight.VideoPathFileCheck {
					return fmt.Errorf("%s check failed: %s", strings.ToLower(result.Name), result.Detail)
				}
			}
			return nil
		},
	}
}
