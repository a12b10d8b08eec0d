package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInit(t *testing.T) {
	env := setupCLITestEnv(t, compatibleProbeScript)
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite must refuse.
	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite returned error: %v", err)
	}
}

func TestConfigInitProducesLoadableFile(t *testing.T) {
	env := setupCLITestEnv(t, compatibleProbeScript)
	target := filepath.Join(env.baseDir, "config.gen.toml")

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if _, _, err := runCLI(t, target, "config", "show"); err != nil {
		t.Fatalf("generated config must load: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t, compatibleProbeScript)

	out, _, err := runCLI(t, env.configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}
	requireContains(t, out, "preferred_container")
	requireContains(t, out, "mkv")
	requireContains(t, out, "max_resolution")
	requireContains(t, out, env.historyPath)
}
