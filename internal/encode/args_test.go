package encode

import (
	"os"
	"strings"
	"testing"

	"conform/internal/plan"
)

func TestFirstPassArgs(t *testing.T) {
	p := plan.Plan{
		VideoCodec:   "h264",
		ScaleFilter:  "1280:-1",
		VideoBitrate: "5184k",
		Passes:       2,
		LogPrefix:    "/tmp/conform-abc",
	}
	args := FirstPassArgs("/media/in.avi", p)

	for _, want := range [][]string{
		{"-i", "/media/in.avi"},
		{"-map", "0:v:0"},
		{"-c:v", "libx264"},
		{"-vf", "scale=1280:-1"},
		{"-b:v", "5184k"},
		{"-pass", "1"},
		{"-passlogfile", "/tmp/conform-abc"},
		{"-f", "null"},
	} {
		assertFlagValue(t, args, want[0], want[1])
	}
	for _, flag := range []string{"-an", "-sn"} {
		if findArg(args, flag) == -1 {
			t.Fatalf("expected %s in first pass args %v", flag, args)
		}
	}
	if args[len(args)-1] != os.DevNull {
		t.Fatalf("first pass must write to the null sink, got %q", args[len(args)-1])
	}
	if findArg(args, "0:a?") != -1 {
		t.Fatalf("first pass must not map audio, got %v", args)
	}
}

func TestFinalPassArgsCopyPlan(t *testing.T) {
	args := FinalPassArgs("/media/in.mkv", "/media/out.mkv", plan.Plan{Passes: 1})

	for _, want := range [][]string{
		{"-map", "0:v:0"},
		{"-c:v", "copy"},
		{"-c:a", "copy"},
		{"-c:s", "copy"},
	} {
		assertFlagValue(t, args, want[0], want[1])
	}
	if findArg(args, "0:a?") == -1 || findArg(args, "0:s?") == -1 {
		t.Fatalf("final pass must map audio and subtitle streams, got %v", args)
	}
	if findArg(args, "-pass") != -1 {
		t.Fatalf("copy plan must not carry pass flags, got %v", args)
	}
	if findArg(args, "-y") != -1 {
		t.Fatalf("final pass must not force overwrite, got %v", args)
	}
	if args[len(args)-1] != "/media/out.mkv" {
		t.Fatalf("destination must be the last argument, got %q", args[len(args)-1])
	}
}

func TestFinalPassArgsSecondPass(t *testing.T) {
	p := plan.Plan{
		VideoCodec:   "h264",
		VideoBitrate: "5184k",
		Passes:       2,
		LogPrefix:    "/tmp/conform-abc",
	}
	args := FinalPassArgs("/media/in.avi", "/media/out.mkv", p)

	assertFlagValue(t, args, "-c:v", "libx264")
	assertFlagValue(t, args, "-pass", "2")
	assertFlagValue(t, args, "-passlogfile", "/tmp/conform-abc")
	if findArg(args, "-vf") != -1 {
		t.Fatalf("plan without scale filter must not add -vf, got %v", args)
	}
}

func TestFinalPassArgsAudioOverridesAreOrdered(t *testing.T) {
	p := plan.Plan{
		Passes:         1,
		AudioOverrides: map[int]string{2: "aac", 0: "mp3"},
	}
	args := FinalPassArgs("/media/in.mkv", "/media/out.mkv", p)

	assertFlagValue(t, args, "-c:a:0", "libmp3lame")
	assertFlagValue(t, args, "-c:a:2", "aac")
	if findArg(args, "-c:a:0") > findArg(args, "-c:a:2") {
		t.Fatalf("overrides must appear in stream order, got %v", args)
	}
	// The blanket copy has to precede per-stream overrides so the overrides
	// win for their streams.
	if findArg(args, "-c:a") > findArg(args, "-c:a:0") {
		t.Fatalf("blanket audio copy must precede overrides, got %v", args)
	}
}

func TestEncoderName(t *testing.T) {
	cases := map[string]string{
		"h264":   "libx264",
		"H264":   "libx264",
		"hevc":   "libx265",
		"vp9":    "libvpx-vp9",
		"mp3":    "libmp3lame",
		"opus":   "libopus",
		"aac":    "aac",
		"custom": "custom",
	}
	for codec, want := range cases {
		if got := encoderName(codec); got != want {
			t.Errorf("encoderName(%q) = %q, want %q", codec, got, want)
		}
	}
}

func assertFlagValue(t *testing.T, args []string, flag, value string) {
	t.Helper()
	i := findArg(args, flag)
	if i == -1 {
		t.Fatalf("expected %s in args %v", flag, args)
	}
	if i+1 >= len(args) || args[i+1] != value {
		t.Fatalf("expected %s %s in args %v", flag, value, args)
	}
}

func findArg(args []string, target string) int {
	for i, arg := range args {
		if arg == target {
			return i
		}
	}
	return -1
}

func TestPassLogArtifacts(t *testing.T) {
	artifacts := PassLogArtifacts("/tmp/conform-abc")
	want := []string{"/tmp/conform-abc-0.log", "/tmp/conform-abc-0.log.mbtree"}
	if len(artifacts) != len(want) {
		t.Fatalf("expected %v, got %v", want, artifacts)
	}
	for i := range want {
		if artifacts[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, artifacts)
		}
	}
	if PassLogArtifacts("") != nil {
		t.Fatal("empty prefix must yield no artifacts")
	}
}

func TestShellQuote(t *testing.T) {
	cases := map[string]string{
		"plain":          "plain",
		"with space":     "'with space'",
		"":               "''",
		"it's":           `'it'\''s'`,
		"/media/out.mkv": "/media/out.mkv",
	}
	for in, want := range cases {
		if got := shellQuote(in); got != want {
			t.Errorf("shellQuote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLastLines(t *testing.T) {
	text := "one\ntwo\nthree\nfour"
	if got := lastLines(text, 3); got != "two\nthree\nfour" {
		t.Fatalf("lastLines = %q", got)
	}
	if got := lastLines("only", 3); got != "only" {
		t.Fatalf("lastLines = %q", got)
	}
	if got := lastLines(strings.TrimSpace("  spaced  "), 3); got != "spaced" {
		t.Fatalf("lastLines = %q", got)
	}
}
