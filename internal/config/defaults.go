package config

const (
	defaultMaxResolution       = 1280
	defaultPreferredVideoCodec = "h264"
	defaultPreferredAudioCodec = "aac"
	defaultPreferredContainer  = "mkv"
	defaultBitsPerPixel        = 0.3
	defaultPasses              = 2
	defaultFFmpegBinary        = "ffmpeg"
	defaultFFprobeBinary       = "ffprobe"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultHistoryPath         = "~/.local/share/conform/history.db"
	defaultNotifyTimeout       = 10
)

// Default returns a Config populated with repository defaults. The default
// policy matches a common standalone player profile: avi/mkv containers,
// h264/mpeg4 video, mp3/ac3/aac audio, 720p-class resolution ceiling.
func Default() Config {
	return Config{
		Policy: Policy{
			Containers:          []string{"avi", "mkv"},
			VideoCodecs:         []string{"h264", "mpeg4"},
			AudioCodecs:         []string{"mp3", "ac3", "aac"},
			MaxResolution:       defaultMaxResolution,
			PreferredVideoCodec: defaultPreferredVideoCodec,
			PreferredAudioCodec: defaultPreferredAudioCodec,
			PreferredContainer:  defaultPreferredContainer,
			BitsPerPixel:        defaultBitsPerPixel,
			Passes:              defaultPasses,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
	}
}
