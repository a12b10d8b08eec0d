package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Policy.Containers = normalizeTokens(c.Policy.Containers)
	c.Policy.VideoCodecs = normalizeTokens(c.Policy.VideoCodecs)
	c.Policy.AudioCodecs = normalizeTokens(c.Policy.AudioCodecs)
	c.Policy.PreferredVideoCodec = strings.ToLower(strings.TrimSpace(c.Policy.PreferredVideoCodec))
	c.Policy.PreferredAudioCodec = strings.ToLower(strings.TrimSpace(c.Policy.PreferredAudioCodec))
	c.Policy.PreferredContainer = strings.ToLower(strings.TrimSpace(c.Policy.PreferredContainer))

	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}

	c.normalizeLogging()

	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}

	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeTokens(values []string) []string {
	tokens := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		tokens = append(tokens, normalized)
	}
	return tokens
}
