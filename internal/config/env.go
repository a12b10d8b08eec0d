package config

import (
	"fmt"
	"strconv"
	"strings"
)

// lookupEnv matches os.LookupEnv; tests supply their own.
type lookupEnv func(string) (string, bool)

// applyEnv layers CONFORM_* environment overrides over the current values.
// List-valued settings use a comma-separated form; members are trimmed and
// lowercased during normalization.
func (c *Config) applyEnv(lookup lookupEnv) error {
	setList(lookup, "CONFORM_CONTAINERS", &c.Policy.Containers)
	setList(lookup, "CONFORM_VIDEO_CODECS", &c.Policy.VideoCodecs)
	setList(lookup, "CONFORM_AUDIO_CODECS", &c.Policy.AudioCodecs)
	if err := setInt(lookup, "CONFORM_MAX_RESOLUTION", &c.Policy.MaxResolution); err != nil {
		return err
	}
	setString(lookup, "CONFORM_PREFERRED_VIDEO_CODEC", &c.Policy.PreferredVideoCodec)
	setString(lookup, "CONFORM_PREFERRED_AUDIO_CODEC", &c.Policy.PreferredAudioCodec)
	setString(lookup, "CONFORM_PREFERRED_CONTAINER", &c.Policy.PreferredContainer)
	if err := setFloat(lookup, "CONFORM_BITS_PER_PIXEL", &c.Policy.BitsPerPixel); err != nil {
		return err
	}
	if err := setInt(lookup, "CONFORM_PASSES", &c.Policy.Passes); err != nil {
		return err
	}
	setString(lookup, "CONFORM_FFMPEG", &c.Tools.FFmpeg)
	setString(lookup, "CONFORM_FFPROBE", &c.Tools.FFprobe)
	setString(lookup, "CONFORM_LOG_LEVEL", &c.Logging.Level)
	setString(lookup, "CONFORM_LOG_FORMAT", &c.Logging.Format)
	setString(lookup, "CONFORM_HISTORY_PATH", &c.History.Path)
	setString(lookup, "CONFORM_NTFY_TOPIC", &c.Notifications.NtfyTopic)
	return nil
}

func setString(lookup lookupEnv, key string, target *string) {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func setList(lookup lookupEnv, key string, target *[]string) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) > 0 {
		*target = items
	}
}

func setInt(lookup lookupEnv, key string, target *int) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: expected integer, got %q", key, value)
	}
	*target = parsed
	return nil
}

func setFloat(lookup lookupEnv, key string, target *float64) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("%s: expected number, got %q", key, value)
	}
	*target = parsed
	return nil
}
