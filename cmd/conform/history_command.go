package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"conform/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent encode runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled in the configuration")
				return nil
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No recorded runs")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				status := entry.Status
				if entry.Status == history.StatusFailed {
					status = fmt.Sprintf("%s (exit %d)", entry.Status, entry.ExitCode)
				}
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					entry.Source,
					entry.VideoDecision,
					strconv.Itoa(entry.Passes),
					status,
					entry.Duration.Round(time.Second).String(),
					humanize.Time(entry.FinishedAt),
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Source", "Video", "Passes", "Status", "Duration", "Finished"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
