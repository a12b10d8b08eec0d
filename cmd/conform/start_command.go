package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"conform/internal/cerrors"
	"conform/internal/config"
	"conform/internal/encode"
	"conform/internal/fileutil"
	"conform/internal/history"
	"conform/internal/logging"
	"conform/internal/notifications"
	"conform/internal/plan"
	"conform/internal/textutil"
)

func newStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start <source> <dest-dir-or-file>",
		Short: "Convert a file so every stream and the container fit the target device",
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
			if err := fileutil.CheckDestination(dest); err != nil {
				return err
			}

			return runEncode(cmd.Context(), ctx, cfg, pln, source, dest)
		},
	}
}

func runEncode(ctx context.Context, cmdCtx *commandContext, cfg *config.Config, pln plan.Plan, source, dest string) error {
	logger := cmdCtx.logger()
	executor := encode.NewExecutor(cfg.Tools.FFmpeg, logger)
	notifier := notifications.NewService(cfg.Notifications)
	title := textutil.DisplayTitle(source)

	started := time.Now()
	runErr := executor.Run(ctx, source, dest, pln)
	finished := time.Now()

	recordRun(ctx, logger, cfg, pln, source, dest, started, finished, runErr)

	if runErr != nil {
		if err := notifier.NotifyEncodeFailed(ctx, title, runErr); err != nil {
			logger.Warn("send failure notification", logging.Error(err))
		}
		return runErr
	}

	if err := notifier.NotifyEncodeCompleted(ctx, title, dest, finished.Sub(started)); err != nil {
		logger.Warn("send completion notification", logging.Error(err))
	}
	return nil
}

// recordRun journals the attempt. History failures are logged and swallowed;
// the encode outcome is what the caller reports.
func recordRun(ctx context.Context, logger *slog.Logger, cfg *config.Config, pln plan.Plan, source, dest string, started, finished time.Time, runErr error) {
	if !cfg.History.Enabled {
		return
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("open history", logging.Error(err))
		return
	}
	defer store.Close()

	entry := history.Entry{
		Source:           source,
		Destination:      dest,
		VideoDecision:    videoDecisionLabel(pln),
		AudioConversions: len(pln.AudioOverrides),
		Passes:           pln.Passes,
		Status:           history.StatusCompleted,
		Duration:         finished.Sub(started),
		StartedAt:        started,
		FinishedAt:       finished,
	}
	if runErr != nil {
		entry.Status = history.StatusFailed
		var encodeErr *cerrors.EncodeError
		if errors.As(runErr, &encodeErr) {
			entry.ExitCode = encodeErr.Code
		} else {
			entry.ExitCode = cerrors.ExitFailure
		}
	}

	if _, err := store.Record(ctx, entry); err != nil {
		logger.Warn("record history", logging.Error(err))
	}
}

func videoDecisionLabel(pln plan.Plan) string {
	if pln.VideoCopy() {
		return "copy"
	}
	return pln.VideoCodec
}
