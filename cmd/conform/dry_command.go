package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"conform/internal/encode"
	"conform/internal/fileutil"
)

func newDryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dry <source> <dest-dir-or-file>",
		Short: "Print the encoder command line(s) start would run, without running them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := checkTools(cfg); err != nil {
				return err
			}

			source := args[0]
			insp, err := inspectSource(cmd.Context(), cfg, source)
			if err != nil {
				return err
			}

			pln, err := insp.buildPlan()
			if err != nil {
				return err
			}

			dest := fileutil.ResolveDestination(source, args[1], insp.targetExtension())
			executor := encode.NewExecutor(cfg.Tools.FFmpeg, ctx.logger())

			out := cmd.OutOrStdout()
			for _, line := range executor.CommandLines(source, dest, pln) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
