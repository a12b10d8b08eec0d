package ffprobe

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"conform/internal/cerrors"
)

var commandContext = exec.CommandContext

// Rational is a frame rate expressed as the exact fraction ffprobe reports.
type Rational struct {
	Num int64
	Den int64
}

// Float returns the rate as a floating point value, or 0 for a zero
// denominator.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// VideoInfo describes the primary video stream of a file.
type VideoInfo struct {
	Codec     string
	Width     int
	Height    int
	FrameRate Rational
}

// AudioStream describes one audio stream. Order matters: the position in
// Facts.Audio is the stream's index within the file's audio streams, which
// drives per-index codec overrides during encoding. Language comes from the
// stream tags and is display-only.
type AudioStream struct {
	Codec    string
	Language string
}

// Facts are the probed properties of one media file.
type Facts struct {
	Container string
	Video     VideoInfo
	Audio     []AudioStream
}

// Inspect probes the file at path with the given ffprobe binary and returns
// its stream facts. A file without a parsable video stream is a probe error;
// a file without audio streams is not.
func Inspect(ctx context.Context, binary, path string) (Facts, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Facts{}, cerrors.Wrap(cerrors.ErrProbe, "empty path", nil)
	}

	videoOut, err := run(ctx, binary,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,avg_frame_rate",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return Facts{}, cerrors.Wrap(cerrors.ErrProbe, "query video stream", err)
	}
	video, err := ParseVideoRecord(videoOut)
	if err != nil {
		return Facts{}, cerrors.Wrap(cerrors.ErrProbe, path, err)
	}

	audioOut, err := run(ctx, binary,
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=codec_name:stream_tags=language",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return Facts{}, cerrors.Wrap(cerrors.ErrProbe, "query audio streams", err)
	}
	audio, err := ParseAudioRecords(audioOut)
	if err != nil {
		return Facts{}, cerrors.Wrap(cerrors.ErrProbe, path, err)
	}

	return Facts{
		Container: ContainerOf(path),
		Video:     video,
		Audio:     audio,
	}, nil
}

// ContainerOf returns the lowercased container token derived from the file
// extension, without the leading dot.
func ContainerOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func run(ctx context.Context, binary string, args ...string) (string, error) {
	cmd := commandContext(ctx, binary, args...)
	output, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		if stderr != "" {
			return "", fmt.Errorf("%w: %s", err, stderr)
		}
		return "", err
	}
	return string(output), nil
}

// ParseVideoRecord decodes the CSV record for the primary video stream:
// codec,width,height,avg_frame_rate. Empty output means the file has no
// video stream and is rejected.
func ParseVideoRecord(output string) (VideoInfo, error) {
	line := firstLine(output)
	if line == "" {
		return VideoInfo{}, fmt.Errorf("no video stream found")
	}
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return VideoInfo{}, fmt.Errorf("malformed video record %q", line)
	}

	codec := strings.ToLower(strings.TrimSpace(fields[0]))
	if codec == "" {
		return VideoInfo{}, fmt.Errorf("missing video codec in record %q", line)
	}
	width, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || width <= 0 {
		return VideoInfo{}, fmt.Errorf("invalid width in record %q", line)
	}
	height, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil || height <= 0 {
		return VideoInfo{}, fmt.Errorf("invalid height in record %q", line)
	}
	rate, err := parseFrameRate(fields[3])
	if err != nil {
		return VideoInfo{}, fmt.Errorf("invalid frame rate in record %q: %w", line, err)
	}

	return VideoInfo{Codec: codec, Width: width, Height: height, FrameRate: rate}, nil
}

// ParseAudioRecords decodes one CSV record per audio stream, in stream-index
// order: codec[,language]. No records is valid; audio-less files exist.
func ParseAudioRecords(output string) ([]AudioStream, error) {
	var streams []AudioStream
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		codec := strings.ToLower(strings.TrimSpace(fields[0]))
		if codec == "" {
			return nil, fmt.Errorf("malformed audio record %q", line)
		}
		stream := AudioStream{Codec: codec}
		if len(fields) > 1 {
			stream.Language = strings.ToLower(strings.TrimSpace(fields[1]))
		}
		streams = append(streams, stream)
	}
	return streams, nil
}

func firstLine(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	return strings.TrimSpace(strings.TrimSuffix(line, "\r"))
}

// parseFrameRate accepts the fractional "num/den" form ffprobe reports for
// avg_frame_rate, or a plain decimal.
func parseFrameRate(value string) (Rational, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Rational{}, fmt.Errorf("empty frame rate")
	}
	if num, den, found := strings.Cut(value, "/"); found {
		n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		if err != nil {
			return Rational{}, fmt.Errorf("numerator %q: %w", num, err)
		}
		d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if err != nil {
			return Rational{}, fmt.Errorf("denominator %q: %w", den, err)
		}
		if n <= 0 || d <= 0 {
			return Rational{}, fmt.Errorf("non-positive rate %q", value)
		}
		return Rational{Num: n, Den: d}, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return Rational{}, err
	}
	if parsed <= 0 {
		return Rational{}, fmt.Errorf("non-positive rate %q", value)
	}
	// Millifps precision covers NTSC-style decimal rates like 23.976.
	return Rational{Num: int64(parsed * 1000), Den: 1000}, nil
}
