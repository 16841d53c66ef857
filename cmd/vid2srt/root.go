package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var pathFileFlag string
	var verbose bool

	ctx := newCommandContext(&configFlag, &pathFileFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:   "vid2srt",
		Short: "Transcribe a video into a transcript and SRT subtitles",
		Long: "vid2srt reads a video path from the path file (path_video.txt by default),\n" +
			"extracts the audio with ffmpeg, transcribes it with Whisper and writes\n" +
			"<audio>.txt and <audio>.srt next to the extracted audio.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&pathFileFlag, "path-file", "", "File containing the video path (overrides paths.video_path_file)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
