package policy

import (
	"strconv"
	"strings"
	"testing"
)

func TestAverageBitrateTruncates(t *testing.T) {
	// 0.3 * 1280 * 540 * 25 = 5,184,000 bit/s -> exactly 5184k.
	got, err := AverageBitrate(1280, 540, 25, 0.3)
	if err != nil {
		t.Fatalf("AverageBitrate returned error: %v", err)
	}
	if got != "5184k" {
		t.Fatalf("expected 5184k, got %q", got)
	}

	// 0.3 * 1281 * 721 * 24 = 6,649,927.2 bit/s = 6649.9272 kbit/s; the
	// fractional kbit must be dropped, not rounded up.
	got, err = AverageBitrate(1281, 721, 24, 0.3)
	if err != nil {
		t.Fatalf("AverageBitrate returned error: %v", err)
	}
	if got != "6649k" {
		t.Fatalf("expected truncation to 6649k, got %q", got)
	}
}

func TestAverageBitrateMonotonic(t *testing.T) {
	base, err := AverageBitrate(1280, 720, 25, 0.3)
	if err != nil {
		t.Fatalf("AverageBitrate returned error: %v", err)
	}

	larger := []struct {
		name          string
		width, height int
		rate, bpp     float64
	}{
		{"wider", 1920, 720, 25, 0.3},
		{"taller", 1280, 1080, 25, 0.3},
		{"faster", 1280, 720, 50, 0.3},
		{"denser", 1280, 720, 25, 0.4},
	}
	for _, tc := range larger {
		got, err := AverageBitrate(tc.width, tc.height, tc.rate, tc.bpp)
		if err != nil {
			t.Fatalf("%s: AverageBitrate returned error: %v", tc.name, err)
		}
		if kbits(t, got) < kbits(t, base) {
			t.Fatalf("%s: expected %q >= %q", tc.name, got, base)
		}
	}
}

func TestAverageBitrateRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		rate, bpp     float64
	}{
		{"zero width", 0, 720, 25, 0.3},
		{"negative height", 1280, -1, 25, 0.3},
		{"zero frame rate", 1280, 720, 0, 0.3},
		{"negative frame rate", 1280, 720, -24, 0.3},
		{"zero bits per pixel", 1280, 720, 25, 0},
	}
	for _, tc := range cases {
		if _, err := AverageBitrate(tc.width, tc.height, tc.rate, tc.bpp); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func kbits(t *testing.T, value string) int64 {
	t.Helper()
	parsed, err := strconv.ParseInt(strings.TrimSuffix(value, "k"), 10, 64)
	if err != nil {
		t.Fatalf("parse bitrate %q: %v", value, err)
	}
	return parsed
}
