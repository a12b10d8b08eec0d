package policy

import (
	"fmt"
	"strings"

	"conform/internal/config"
)

// Policy holds the device compatibility rules a file is judged against. It is
// built once from configuration and shared read-only by every decision.
type Policy struct {
	MaxResolution       int
	PreferredVideoCodec string
	PreferredAudioCodec string
	PreferredContainer  string
	BitsPerPixel        float64
	Passes              int

	containers  map[string]struct{}
	videoCodecs map[string]struct{}
	audioCodecs map[string]struct{}
}

// New builds a Policy from the validated configuration section. Set members
// are matched as lowercase tokens.
func New(cfg config.Policy) (*Policy, error) {
	if cfg.MaxResolution <= 0 {
		return nil, fmt.Errorf("policy: max_resolution must be positive, got %d", cfg.MaxResolution)
	}
	if cfg.BitsPerPixel <= 0 {
		return nil, fmt.Errorf("policy: bits_per_pixel must be positive, got %g", cfg.BitsPerPixel)
	}
	if cfg.Passes != 1 && cfg.Passes != 2 {
		return nil, fmt.Errorf("policy: passes must be 1 or 2, got %d", cfg.Passes)
	}

	p := &Policy{
		MaxResolution:       cfg.MaxResolution,
		PreferredVideoCodec: normalizeToken(cfg.PreferredVideoCodec),
		PreferredAudioCodec: normalizeToken(cfg.PreferredAudioCodec),
		PreferredContainer:  normalizeToken(cfg.PreferredContainer),
		BitsPerPixel:        cfg.BitsPerPixel,
		Passes:              cfg.Passes,
		containers:          tokenSet(cfg.Containers),
		videoCodecs:         tokenSet(cfg.VideoCodecs),
		audioCodecs:         tokenSet(cfg.AudioCodecs),
	}
	if p.PreferredVideoCodec == "" {
		return nil, fmt.Errorf("policy: preferred_video_codec must be set")
	}
	if p.PreferredAudioCodec == "" {
		return nil, fmt.Errorf("policy: preferred_audio_codec must be set")
	}
	if p.PreferredContainer == "" {
		return nil, fmt.Errorf("policy: preferred_container must be set")
	}
	if len(p.containers) == 0 {
		return nil, fmt.Errorf("policy: containers must not be empty")
	}
	if len(p.videoCodecs) == 0 {
		return nil, fmt.Errorf("policy: video_codecs must not be empty")
	}
	if len(p.audioCodecs) == 0 {
		return nil, fmt.Errorf("policy: audio_codecs must not be empty")
	}
	return p, nil
}

// DecideContainer reports whether a file with the given extension can stay in
// its container.
func (p *Policy) DecideContainer(ext string) Decision {
	if p.supports(p.containers, ext) {
		return Copy()
	}
	return Convert(p.PreferredContainer)
}

// DecideVideoCodec reports whether the video stream codec is playable as-is.
func (p *Policy) DecideVideoCodec(codec string) Decision {
	if p.supports(p.videoCodecs, codec) {
		return Copy()
	}
	return Convert(p.PreferredVideoCodec)
}

// DecideAudioCodec reports whether an audio stream codec is playable as-is.
func (p *Policy) DecideAudioCodec(codec string) Decision {
	if p.supports(p.audioCodecs, codec) {
		return Copy()
	}
	return Convert(p.PreferredAudioCodec)
}

// DecideResolution checks the frame size against the policy maximum. The
// limit applies to the larger dimension; an oversized frame is scaled down
// with the larger dimension fixed to the maximum and the other left to the
// encoder ("-1") so the aspect ratio is preserved. A square frame counts as
// width-is-larger.
func (p *Policy) DecideResolution(width, height int) Decision {
	larger := width
	if height > width {
		larger = height
	}
	if larger <= p.MaxResolution {
		return Copy()
	}
	if width >= height {
		return Convert(fmt.Sprintf("%d:-1", p.MaxResolution))
	}
	return Convert(fmt.Sprintf("-1:%d", p.MaxResolution))
}

func (p *Policy) supports(set map[string]struct{}, token string) bool {
	_, ok := set[normalizeToken(token)]
	return ok
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		normalized := normalizeToken(token)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}
