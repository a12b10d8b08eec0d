// Package encode renders ffmpeg command lines from an encode plan and drives
// the one- or two-pass invocation sequence, including pass-log artifact
// cleanup and verbatim exit-code propagation on failure.
package encode
