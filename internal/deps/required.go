package deps

import "conform/internal/config"

// Required lists the external tools conform needs for probing and encoding.
func Required(tools config.Tools) []Requirement {
	return []Requirement{
		{
			Name:        "FFprobe",
			Command:     tools.FFprobe,
			Description: "Required for media inspection",
		},
		{
			Name:        "FFmpeg",
			Command:     tools.FFmpeg,
			Description: "Required for encoding",
		},
	}
}

// FirstMissing returns the first required (non-optional) tool that is
// unavailable, or nil when everything resolves.
func FirstMissing(statuses []Status) *Status {
	for i := range statuses {
		if !statuses[i].Available && !statuses[i].Optional {
			return &statuses[i]
		}
	}
	return nil
}
