// Package textutil derives display strings from file names for report and
// notification output.
package textutil

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayTitle turns a media file path into a human-readable title: the file
// stem with dot/underscore separators replaced by spaces, whitespace
// collapsed, and title casing applied.
func DisplayTitle(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	replaced := strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(stem)
	words := strings.Fields(replaced)
	if len(words) == 0 {
		return stem
	}
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
