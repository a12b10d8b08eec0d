// Package report applies the compatibility policy to probed stream facts and
// aggregates the per-property outcomes into a single decision report.
package report

import (
	"conform/internal/media/ffprobe"
	"conform/internal/policy"
)

// Report collects the compatibility decision for each property of one file.
// Audio is index-aligned with the probed audio streams.
type Report struct {
	Container  policy.Decision
	Resolution policy.Decision
	Video      policy.Decision
	Audio      []policy.Decision
}

// Build evaluates every property of facts against the policy independently.
func Build(p *policy.Policy, facts ffprobe.Facts) Report {
	rep := Report{
		Container:  p.DecideContainer(facts.Container),
		Resolution: p.DecideResolution(facts.Video.Width, facts.Video.Height),
		Video:      p.DecideVideoCodec(facts.Video.Codec),
	}
	if len(facts.Audio) > 0 {
		rep.Audio = make([]policy.Decision, len(facts.Audio))
		for i, stream := range facts.Audio {
			rep.Audio[i] = p.DecideAudioCodec(stream.Codec)
		}
	}
	return rep
}

// AllCopy reports whether the file is fully compatible: container,
// resolution, video, and every audio stream pass through unchanged.
func (r Report) AllCopy() bool {
	if !r.Container.IsCopy() || !r.Resolution.IsCopy() || !r.Video.IsCopy() {
		return false
	}
	for _, d := range r.Audio {
		if !d.IsCopy() {
			return false
		}
	}
	return true
}

// VideoCopy reports whether the video track can be copied: the container,
// resolution, and video codec decisions must all pass. A container remux or
// a downscale forces a video re-encode even when the codec itself is fine.
func (r Report) VideoCopy() bool {
	return r.Container.IsCopy() && r.Resolution.IsCopy() && r.Video.IsCopy()
}
