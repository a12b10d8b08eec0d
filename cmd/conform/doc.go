// Command conform inspects a media file against a device compatibility
// policy and, when needed, converts the incompatible streams with ffmpeg.
//
// Exit codes: 0 success or fully compatible, 1 generic failure, 2 source
// missing or destination exists, 3 conversion needed (info), 4 required tool
// missing. Encoder failures exit with the encoder's own exit code.
package main
