// Package ffprobe queries stream properties through the external ffprobe
// tool, one stream class per invocation, using its compact CSV output. It is
// a pure query layer: parsing only, no compatibility decisions.
package ffprobe
