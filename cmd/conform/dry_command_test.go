package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDryRendersTwoPassCommands(t *testing.T) {
	env := setupCLITestEnv(t, incompatibleProbeScript)
	source := writeSource(t, env.baseDir, "movie.mp4")
	destDir := filepath.Join(env.baseDir, "out")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		t.Fatalf("mkdir dest: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "dry", source, destDir)
	if err != nil {
		t.Fatalf("dry returned error: %v", err)
	}

	lines := nonEmptyLines(out)
	if len(lines) != 2 {
		t.Fatalf("expected two command lines, got %d:\n%s", len(lines), out)
	}
	requireContains(t, lines[0], "-pass 1")
	requireContains(t, lines[0], "-f null")
	requireContains(t, lines[1], "-pass 2")
	requireContains(t, lines[1], filepath.Join(destDir, "movie.mkv"))
	requireContains(t, lines[1], "-c:a:0 aac")
}

func TestDryCompatibleFileRendersSingleCopyCommand(t *testing.T) {
	env := setupCLITestEnv(t, compatibleProbeScript)
	source := writeSource(t, env.baseDir, "movie.mkv")
	destDir := filepath.Join(env.baseDir, "out")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		t.Fatalf("mkdir dest: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "dry", source, destDir)
	if err != nil {
		t.Fatalf("dry returned error: %v", err)
	}

	lines := nonEmptyLines(out)
	if len(lines) != 1 {
		t.Fatalf("expected one command line, got %d:\n%s", len(lines), out)
	}
	requireContains(t, lines[0], "-c:v copy")
	if strings.Contains(lines[0], "-pass") {
		t.Fatalf("copy plan must not carry pass flags: %s", lines[0])
	}
}

func nonEmptyLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
