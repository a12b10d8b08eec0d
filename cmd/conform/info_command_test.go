package main

import (
	"encoding/json"
	"errors"
	"testing"

	"conform/internal/cerrors"
)

func TestInfoCompatibleFile(t *testing.T) {
	env := setupCLITestEnv(t, compatibleProbeScript)
	source := writeSource(t, env.baseDir, "old.family.videos.mkv")

	out, _, err := runCLI(t, env.configPath, "info", source)
	if err != nil {
		t.Fatalf("info returned error: %v", err)
	}
	requireContains(t, out, "Old Family Videos")
	requireContains(t, out, "Fully compatible")
	requireContains(t, out, "English")
}

func TestInfoConversionNeeded(t *testing.T) {
	env := setupCLITestEnv(t, incompatibleProbeScript)
	source := writeSource(t, env.baseDir, "movie.mp4")

	out, _, err := runCLI(t, env.configPath, "info", source)
	if !errors.Is(err, cerrors.ErrConversionNeeded) {
		t.Fatalf("expected conversion-needed error, got %v", err)
	}
	if cerrors.ExitCode(err) != cerrors.ExitConversionNeeded {
		t.Fatalf("expected exit code %d, got %d", cerrors.ExitConversionNeeded, cerrors.ExitCode(err))
	}
	requireContains(t, out, "Conversion needed")
	requireContains(t, out, "1920x1080")
}

func TestInfoJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t, incompatibleProbeScript)
	source := writeSource(t, env.baseDir, "movie.mp4")

	out, _, err := runCLI(t, env.configPath, "info", "--json", source)
	if !errors.Is(err, cerrors.ErrConversionNeeded) {
		t.Fatalf("expected conversion-needed error, got %v", err)
	}

	var view reportView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode JSON report: %v\noutput: %s", err, out)
	}
	if view.AllCopy {
		t.Fatal("expected fully_compatible=false")
	}
	// container, resolution, video plus two audio streams.
	if len(view.Streams) != 5 {
		t.Fatalf("expected 5 stream rows, got %d: %+v", len(view.Streams), view.Streams)
	}
	if view.Streams[0].Stream != "container" || view.Streams[0].Decision != "mkv" {
		t.Fatalf("unexpected container row %+v", view.Streams[0])
	}
	if view.Streams[1].Decision != "1280:-1" {
		t.Fatalf("unexpected resolution decision %+v", view.Streams[1])
	}
	if view.Streams[3].Decision != "aac" || view.Streams[4].Decision != "copy" {
		t.Fatalf("unexpected audio decisions %+v", view.Streams[3:])
	}
}

func TestInfoMissingSource(t *testing.T) {
	env := setupCLITestEnv(t, compatibleProbeScript)

	_, _, err := runCLI(t, env.configPath, "info", "/nonexistent/movie.avi")
	if !errors.Is(err, cerrors.ErrSourceNotFound) {
		t.Fatalf("expected source-not-found error, got %v", err)
	}
	if cerrors.ExitCode(err) != cerrors.ExitUnavailable {
		t.Fatalf("expected exit code %d, got %d", cerrors.ExitUnavailable, cerrors.ExitCode(err))
	}
}
