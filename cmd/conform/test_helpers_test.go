package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"conform/internal/testsupport"
)

// compatibleProbeScript answers the two probe queries for a file the default
// policy accepts as-is.
const compatibleProbeScript = `#!/bin/sh
case "$*" in
*v:0*) echo "h264,1280,720,25/1" ;;
*) echo "aac,eng" ;;
esac
exit 0
`

// incompatibleProbeScript describes an oversized mpeg4 file with one
// unsupported audio stream.
const incompatibleProbeScript = `#!/bin/sh
case "$*" in
*v:0*) echo "mpeg4,1920,1080,25/1" ;;
*)
	echo "dts,eng"
	echo "aac,fre"
	;;
esac
exit 0
`

type cliTestEnv struct {
	configPath  string
	historyPath string
	baseDir     string
}

// setupCLITestEnv stubs the external binaries, isolates HOME, and writes a
// config file pointing history at a per-test database.
func setupCLITestEnv(t *testing.T, probeScript string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	testsupport.NewConfig(t,
		testsupport.WithStubbedBinaries("ffmpeg"),
		testsupport.WithStubBinary("ffprobe", probeScript),
	)

	historyPath := filepath.Join(base, "history.db")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[history]\nenabled = true\npath = %q\n", historyPath)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		configPath:  configPath,
		historyPath: historyPath,
		baseDir:     base,
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	testsupport.WriteFile(t, path, 4096)
	return path
}
