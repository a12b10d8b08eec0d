package encode

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"conform/internal/plan"
)

// encoderNames maps probed stream codec tokens to the ffmpeg encoder that
// produces them. Unlisted codecs pass through unchanged; ffmpeg resolves its
// own default encoder for those.
var encoderNames = map[string]string{
	"h264":   "libx264",
	"avc":    "libx264",
	"hevc":   "libx265",
	"h265":   "libx265",
	"vp9":    "libvpx-vp9",
	"av1":    "libsvtav1",
	"mp3":    "libmp3lame",
	"opus":   "libopus",
	"vorbis": "libvorbis",
}

func encoderName(codec string) string {
	if name, ok := encoderNames[strings.ToLower(codec)]; ok {
		return name
	}
	return codec
}

// FirstPassArgs renders the argv for the analysis pass of a two-pass encode.
// Only the video stream is mapped and the output goes to a null sink; the
// pass leaves behind the log artifacts named by the plan's LogPrefix.
func FirstPassArgs(source string, p plan.Plan) []string {
	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error", "-y",
		"-i", source,
		"-map", "0:v:0",
		"-an", "-sn",
	}
	args = appendVideoEncodeArgs(args, p)
	args = append(args, "-pass", "1", "-passlogfile", p.LogPrefix)
	args = append(args, "-f", "null", os.DevNull)
	return args
}

// FinalPassArgs renders the argv for the pass that writes the destination:
// the only pass of a single-pass run, or pass two of a two-pass run. Video,
// audio, and any subtitle streams are all mapped; subtitles are always
// copied. No overwrite flag is passed, so an existing destination makes
// ffmpeg fail instead of clobbering it.
func FinalPassArgs(source, dest string, p plan.Plan) []string {
	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-i", source,
		"-map", "0:v:0",
		"-map", "0:a?",
		"-map", "0:s?",
	}
	if p.VideoCopy() {
		args = append(args, "-c:v", "copy")
	} else {
		args = appendVideoEncodeArgs(args, p)
		if p.Passes == 2 {
			args = append(args, "-pass", "2", "-passlogfile", p.LogPrefix)
		}
	}
	args = append(args, "-c:a", "copy")
	for _, index := range sortedOverrideIndexes(p.AudioOverrides) {
		args = append(args, "-c:a:"+strconv.Itoa(index), encoderName(p.AudioOverrides[index]))
	}
	args = append(args, "-c:s", "copy")
	args = append(args, dest)
	return args
}

func appendVideoEncodeArgs(args []string, p plan.Plan) []string {
	args = append(args, "-c:v", encoderName(p.VideoCodec))
	if p.ScaleFilter != "" {
		args = append(args, "-vf", "scale="+p.ScaleFilter)
	}
	if p.VideoBitrate != "" {
		args = append(args, "-b:v", p.VideoBitrate)
	}
	return args
}

func sortedOverrideIndexes(overrides map[int]string) []int {
	if len(overrides) == 0 {
		return nil
	}
	indexes := make([]int, 0, len(overrides))
	for index := range overrides {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	return indexes
}
