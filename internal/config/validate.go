package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePolicy(); err != nil {
		return err
	}
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validatePolicy() error {
	if len(c.Policy.Containers) == 0 {
		return errors.New("policy.containers must include at least one container")
	}
	if len(c.Policy.VideoCodecs) == 0 {
		return errors.New("policy.video_codecs must include at least one codec")
	}
	if len(c.Policy.AudioCodecs) == 0 {
		return errors.New("policy.audio_codecs must include at least one codec")
	}
	if c.Policy.MaxResolution <= 0 {
		return fmt.Errorf("policy.max_resolution must be positive, got %d", c.Policy.MaxResolution)
	}
	if c.Policy.PreferredVideoCodec == "" {
		return errors.New("policy.preferred_video_codec must be set")
	}
	if c.Policy.PreferredAudioCodec == "" {
		return errors.New("policy.preferred_audio_codec must be set")
	}
	if c.Policy.PreferredContainer == "" {
		return errors.New("policy.preferred_container must be set")
	}
	if c.Policy.BitsPerPixel <= 0 {
		return fmt.Errorf("policy.bits_per_pixel must be positive, got %g", c.Policy.BitsPerPixel)
	}
	if c.Policy.Passes != 1 && c.Policy.Passes != 2 {
		return fmt.Errorf("policy.passes must be 1 or 2, got %d", c.Policy.Passes)
	}
	return nil
}
