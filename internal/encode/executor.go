package encode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/gofrs/flock"

	"conform/internal/cerrors"
	"conform/internal/logging"
	"conform/internal/plan"
)

var commandContext = exec.CommandContext

// Executor drives the encoder through a plan. A run is strictly sequential:
// the analysis pass (when the plan uses two) must exit before the pass that
// writes the destination starts, and the pass-log artifacts are removed once
// the two-pass sequence ends no matter how either pass fared.
type Executor struct {
	binary string
	logger *slog.Logger
}

// NewExecutor builds an executor around the given ffmpeg binary.
func NewExecutor(binary string, logger *slog.Logger) *Executor {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{binary: binary, logger: logger}
}

// Run executes the plan against source, writing dest. Encoder failures carry
// the tool's exit code so the caller can propagate it verbatim. A lock file
// next to the destination fences off concurrent invocations targeting the
// same output.
func (e *Executor) Run(ctx context.Context, source, dest string, p plan.Plan) error {
	lockPath := dest + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire destination lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("destination %s is locked by another conform invocation", dest)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	if p.Passes == 2 {
		defer e.removePassLogs(p.LogPrefix)

		e.logger.Info("first pass started",
			logging.String("source", source),
			logging.String("bitrate", p.VideoBitrate))
		if err := e.runPass(ctx, "first pass", FirstPassArgs(source, p)); err != nil {
			return err
		}
	}

	e.logger.Info("encoding started",
		logging.String("source", source),
		logging.String("destination", dest),
		logging.Int("passes", p.Passes))
	if err := e.runPass(ctx, "encode", FinalPassArgs(source, dest, p)); err != nil {
		return err
	}

	e.logger.Info("encoding finished", logging.String("destination", dest))
	return nil
}

// CommandLines renders the exact command line(s) Run would execute, first
// pass included when the plan uses two. Nothing is invoked and nothing is
// written.
func (e *Executor) CommandLines(source, dest string, p plan.Plan) []string {
	var lines []string
	if p.Passes == 2 {
		lines = append(lines, renderCommand(e.binary, FirstPassArgs(source, p)))
	}
	lines = append(lines, renderCommand(e.binary, FinalPassArgs(source, dest, p)))
	return lines
}

func (e *Executor) runPass(ctx context.Context, stage string, args []string) error {
	cmd := commandContext(ctx, e.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail := strings.TrimSpace(stderr.String())
			encodeErr := &cerrors.EncodeError{Stage: stage, Code: exitErr.ExitCode()}
			if detail != "" {
				encodeErr.Err = errors.New(lastLines(detail, 3))
			}
			e.logger.Error("encoder failed",
				logging.String("stage", stage),
				logging.Int("exit_code", encodeErr.Code))
			return encodeErr
		}
		return fmt.Errorf("%s: run %s: %w", stage, e.binary, err)
	}
	return nil
}

// removePassLogs deletes the artifacts a two-pass encode leaves next to the
// log prefix. Best-effort: a failed pass must still trigger the removal, and
// missing files are fine.
func (e *Executor) removePassLogs(prefix string) {
	for _, artifact := range PassLogArtifacts(prefix) {
		if err := os.Remove(artifact); err != nil && !os.IsNotExist(err) {
			e.logger.Warn("remove pass log", logging.String("path", artifact), logging.Error(err))
		}
	}
}

// PassLogArtifacts lists the files the encoder derives from a pass-log
// prefix.
func PassLogArtifacts(prefix string) []string {
	if prefix == "" {
		return nil
	}
	return []string{prefix + "-0.log", prefix + "-0.log.mbtree"}
}

func renderCommand(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellQuote(binary))
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(value string) string {
	if value == "" {
		return "''"
	}
	if strings.ContainsAny(value, " \t\"'$&|;<>()*?[]#~`\\") {
		return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
	}
	return value
}

func lastLines(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
