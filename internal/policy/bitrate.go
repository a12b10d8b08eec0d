package policy

import "fmt"

// AverageBitrate derives the target average video bitrate for a re-encode
// from the source frame geometry, frame rate, and the configured bits per
// pixel. The raw bits-per-second figure is divided by 1000 and truncated,
// not rounded, to whole kilobits; downstream tooling depends on the
// truncated value, so the floor is deliberate.
func AverageBitrate(width, height int, frameRate, bitsPerPixel float64) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("bitrate: invalid frame size %dx%d", width, height)
	}
	if frameRate <= 0 {
		return "", fmt.Errorf("bitrate: frame rate must be positive, got %g", frameRate)
	}
	if bitsPerPixel <= 0 {
		return "", fmt.Errorf("bitrate: bits per pixel must be positive, got %g", bitsPerPixel)
	}
	bitsPerSecond := bitsPerPixel * float64(width) * float64(height) * frameRate
	return fmt.Sprintf("%dk", int64(bitsPerSecond/1000)), nil
}
