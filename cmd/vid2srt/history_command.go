package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vid2srt/internal/history"
	"vid2srt/internal/language"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, "Run history is disabled (history.enabled = false)")
				return nil
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Status", "Video", "Segments", "Language", "Duration", "Detail"},
				historyRows(runs),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func historyRows(runs []history.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		lang := ""
		if run.Language != "" {
			lang = language.DisplayName(run.Language)
		}
		duration := ""
		if d := run.Duration(); d > 0 {
			duration = d.Round(time.Second).String()
		}
		detail := run.SubtitlePath
		switch {
		case !run.Status.Terminal():
			detail = "in progress"
		case run.Status != history.StatusCompleted:
			detail = run.FailureReason
		}
		rows = append(rows, []string{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(run.Status),
			filepath.Base(run.VideoPath),
			strconv.Itoa(run.SegmentCount),
			lang,
			duration,
			detail,
		})
	}
	return rows
}
