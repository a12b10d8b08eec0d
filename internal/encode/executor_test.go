package encode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"conform/internal/cerrors"
	"conform/internal/plan"
)

func stubCommand(t *testing.T, mode string, captured *[][]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if captured != nil {
			*captured = append(*captured, append([]string(nil), args...))
		}
		helperMode := mode
		if mode == "fail-first" {
			helperMode = "fail"
			if len(*captured) > 1 {
				helperMode = "success"
			}
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "CONFORM_HELPER_MODE="+helperMode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestRunSinglePassSuccess(t *testing.T) {
	var invocations [][]string
	stubCommand(t, "success", &invocations)

	dest := filepath.Join(t.TempDir(), "out.mkv")
	executor := NewExecutor("ffmpeg", nil)
	if err := executor.Run(context.Background(), "/media/in.mkv", dest, plan.Plan{Passes: 1}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(invocations) != 1 {
		t.Fatalf("expected one encoder invocation, got %d", len(invocations))
	}
	if findArg(invocations[0], "-pass") != -1 {
		t.Fatalf("single-pass run must not carry pass flags, got %v", invocations[0])
	}
	if _, err := os.Stat(dest + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("lock file must be removed after the run, stat err: %v", err)
	}
}

func TestRunTwoPassSequence(t *testing.T) {
	var invocations [][]string
	stubCommand(t, "success", &invocations)

	tempDir := t.TempDir()
	p := twoPassPlan(tempDir)
	seedPassLogs(t, p.LogPrefix)

	executor := NewExecutor("ffmpeg", nil)
	dest := filepath.Join(tempDir, "out.mkv")
	if err := executor.Run(context.Background(), "/media/in.avi", dest, p); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(invocations) != 2 {
		t.Fatalf("expected two encoder invocations, got %d", len(invocations))
	}
	if v := invocations[0][findArg(invocations[0], "-pass")+1]; v != "1" {
		t.Fatalf("expected first invocation to be pass 1, got %v", invocations[0])
	}
	if v := invocations[1][findArg(invocations[1], "-pass")+1]; v != "2" {
		t.Fatalf("expected second invocation to be pass 2, got %v", invocations[1])
	}
	assertPassLogsRemoved(t, p.LogPrefix)
}

func TestRunFirstPassFailureSkipsSecondPass(t *testing.T) {
	var invocations [][]string
	stubCommand(t, "fail-first", &invocations)

	tempDir := t.TempDir()
	p := twoPassPlan(tempDir)
	seedPassLogs(t, p.LogPrefix)

	executor := NewExecutor("ffmpeg", nil)
	err := executor.Run(context.Background(), "/media/in.avi", filepath.Join(tempDir, "out.mkv"), p)
	if err == nil {
		t.Fatal("expected error from failed first pass")
	}
	if len(invocations) != 1 {
		t.Fatalf("second pass must not run after a failed first pass, got %d invocations", len(invocations))
	}

	var encodeErr *cerrors.EncodeError
	if !errors.As(err, &encodeErr) {
		t.Fatalf("expected EncodeError, got %T: %v", err, err)
	}
	if encodeErr.Code != 3 {
		t.Fatalf("expected encoder exit code 3, got %d", encodeErr.Code)
	}
	if cerrors.ExitCode(err) != 3 {
		t.Fatalf("exit code must propagate verbatim, got %d", cerrors.ExitCode(err))
	}
	if encodeErr.Err == nil || !strings.Contains(encodeErr.Err.Error(), "bitrate too low") {
		t.Fatalf("expected captured stderr detail, got %v", encodeErr.Err)
	}
	assertPassLogsRemoved(t, p.LogPrefix)
}

func TestRunRefusesConcurrentDestination(t *testing.T) {
	stubCommand(t, "success", nil)

	dest := filepath.Join(t.TempDir(), "out.mkv")
	held := flock.New(dest + ".lock")
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("acquire test lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	executor := NewExecutor("ffmpeg", nil)
	if err := executor.Run(context.Background(), "/media/in.mkv", dest, plan.Plan{Passes: 1}); err == nil {
		t.Fatal("expected error when destination lock is held")
	}
}

func TestCommandLines(t *testing.T) {
	executor := NewExecutor("/usr/bin/ffmpeg", nil)

	copyLines := executor.CommandLines("/media/in.mkv", "/media/out.mkv", plan.Plan{Passes: 1})
	if len(copyLines) != 1 {
		t.Fatalf("copy plan must render one command, got %d", len(copyLines))
	}
	if !strings.HasPrefix(copyLines[0], "/usr/bin/ffmpeg ") {
		t.Fatalf("command must start with the binary, got %q", copyLines[0])
	}

	p := plan.Plan{
		VideoCodec:   "h264",
		VideoBitrate: "5184k",
		Passes:       2,
		LogPrefix:    "/tmp/conform-abc",
	}
	lines := executor.CommandLines("/media/my file.avi", "/media/out.mkv", p)
	if len(lines) != 2 {
		t.Fatalf("two-pass plan must render two commands, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "-pass 1") || !strings.Contains(lines[1], "-pass 2") {
		t.Fatalf("expected pass flags in rendered commands: %v", lines)
	}
	if !strings.Contains(lines[0], "'/media/my file.avi'") {
		t.Fatalf("paths with spaces must be quoted, got %q", lines[0])
	}
}

func twoPassPlan(dir string) plan.Plan {
	return plan.Plan{
		VideoCodec:   "h264",
		VideoBitrate: "5184k",
		Passes:       2,
		LogPrefix:    filepath.Join(dir, "conform-test"),
	}
}

func seedPassLogs(t *testing.T, prefix string) {
	t.Helper()
	for _, artifact := range PassLogArtifacts(prefix) {
		if err := os.WriteFile(artifact, []byte("stats"), 0o644); err != nil {
			t.Fatalf("seed pass log %s: %v", artifact, err)
		}
	}
}

func assertPassLogsRemoved(t *testing.T, prefix string) {
	t.Helper()
	for _, artifact := range PassLogArtifacts(prefix) {
		if _, err := os.Stat(artifact); !os.IsNotExist(err) {
			t.Fatalf("pass log %s must be removed, stat err: %v", artifact, err)
		}
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("CONFORM_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "fail":
		fmt.Fprintln(os.Stderr, "frame rate mismatch")
		fmt.Fprintln(os.Stderr, "bitrate too low")
		os.Exit(3)
	default:
		os.Exit(0)
	}
}
