// Package plan turns a decision report into the concrete parameters for one
// encoder invocation.
package plan

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"conform/internal/media/ffprobe"
	"conform/internal/policy"
	"conform/internal/report"
)

// Plan is the derived parameter set for a single encode. It is owned by one
// invocation and discarded afterwards, together with any pass-log artifacts
// named by LogPrefix.
type Plan struct {
	// VideoCodec is the encoder target for the video stream; empty means
	// the stream is copied.
	VideoCodec string
	// ScaleFilter is the "W:H" downscale spec, empty when no scaling.
	ScaleFilter string
	// VideoBitrate is the target average bitrate ("5184k"), set only for
	// re-encodes.
	VideoBitrate string
	// Passes is 1 or 2. Two passes happen only for video re-encodes.
	Passes int
	// AudioOverrides maps audio-stream index to the codec that stream is
	// converted to. Streams absent from the map are copied.
	AudioOverrides map[int]string
	// LogPrefix names the two-pass log artifacts; empty for single pass.
	// It is unique per invocation so concurrent runs sharing a directory
	// cannot collide.
	LogPrefix string
}

// VideoCopy reports whether the video stream passes through untouched.
func (p Plan) VideoCopy() bool {
	return p.VideoCodec == ""
}

// Build derives the encode plan for one file from its decision report.
// Aside from LogPrefix generation the result is a pure function of the
// inputs: identical (policy, facts) pairs yield identical parameters.
func Build(pol *policy.Policy, facts ffprobe.Facts, rep report.Report) (Plan, error) {
	p := Plan{Passes: 1}

	if !rep.VideoCopy() {
		// A re-encode forced by the container or resolution still needs a
		// concrete output codec; fall back to the preferred one when the
		// source codec itself was acceptable.
		p.VideoCodec = rep.Video.Target()
		if p.VideoCodec == "" {
			p.VideoCodec = pol.PreferredVideoCodec
		}
		if !rep.Resolution.IsCopy() {
			p.ScaleFilter = rep.Resolution.Target()
		}
		bitrate, err := policy.AverageBitrate(
			facts.Video.Width,
			facts.Video.Height,
			facts.Video.FrameRate.Float(),
			pol.BitsPerPixel,
		)
		if err != nil {
			return Plan{}, err
		}
		p.VideoBitrate = bitrate

		if pol.Passes == 2 {
			p.Passes = 2
			p.LogPrefix = newLogPrefix()
		}
	}

	for i, d := range rep.Audio {
		if d.IsCopy() {
			continue
		}
		if p.AudioOverrides == nil {
			p.AudioOverrides = make(map[int]string)
		}
		p.AudioOverrides[i] = d.Target()
	}

	return p, nil
}

func newLogPrefix() string {
	return filepath.Join(os.TempDir(), "conform-"+uuid.NewString())
}
