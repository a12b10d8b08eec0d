package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"conform/internal/cerrors"
	"conform/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight [dest-dir]",
		Short: "Check external tools and destination readiness",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			targetDir := ""
			if len(args) == 1 {
				targetDir = args[0]
			}

			results := preflight.Run(cfg, targetDir)
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				rows = append(rows, []string{result.Name, passLabel(result.Passed), result.Detail})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Check", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if preflight.AllPassed(results) {
				return nil
			}
			for _, result := range results {
				if !result.Passed && (result.Name == "FFmpeg" || result.Name == "FFprobe") {
					return cerrors.Wrap(cerrors.ErrMissingTool, result.Detail, nil)
				}
			}
			return fmt.Errorf("preflight checks failed")
		},
	}
}

func passLabel(passed bool) string {
	if passed {
		return "ok"
	}
	return "failed"
}
