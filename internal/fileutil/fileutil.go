// Package fileutil holds the source/destination filesystem checks and
// destination path construction used by the CLI commands.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"conform/internal/cerrors"
)

// CheckSource verifies the source media file exists and is a regular file.
func CheckSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cerrors.Wrap(cerrors.ErrSourceNotFound, path, nil)
		}
		return fmt.Errorf("stat source %s: %w", path, err)
	}
	if info.IsDir() {
		return cerrors.Wrap(cerrors.ErrSourceNotFound, path+" is a directory", nil)
	}
	return nil
}

// CheckDestination verifies nothing exists at the destination path yet.
// Existing files are never overwritten or deleted.
func CheckDestination(path string) error {
	if _, err := os.Stat(path); err == nil {
		return cerrors.Wrap(cerrors.ErrDestinationExists, path, nil)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat destination %s: %w", path, err)
	}
	return nil
}

// ResolveDestination turns the user-supplied destination argument into a
// concrete file path. An existing directory yields <dir>/<source stem>.<ext>
// with ext following the container decision; anything else is taken as the
// destination file as given.
func ResolveDestination(source, destArg, targetExt string) string {
	if info, err := os.Stat(destArg); err == nil && info.IsDir() {
		base := filepath.Base(source)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if stem == "" {
			stem = base
		}
		name := stem
		if targetExt != "" {
			name += "." + targetExt
		}
		return filepath.Join(destArg, name)
	}
	return destArg
}
