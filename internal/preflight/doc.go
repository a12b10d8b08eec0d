// Package preflight checks that the environment can support an encode run:
// required external tools on PATH, a writable destination directory, and
// enough free disk space.
package preflight
