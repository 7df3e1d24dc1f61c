// Package sanitize cleans client-supplied filenames before they are used in
// storage keys, on-disk paths, or Content-Disposition headers.
package sanitize

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const maxFilenameLen = 255

// Filename strips path separators and control characters, replaces double
// quotes, and truncates to 255 characters. An input that sanitizes to nothing
// becomes "file".
func Filename(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			// drop path separators entirely, traversal sequences collapse
		case r < 0x20 || r == 0x7f:
			// control characters
		case r == '"':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" || out == "." || out == ".." {
		return "file"
	}
	if len(out) > maxFilenameLen {
		// Cut on a rune boundary so truncation never yields invalid UTF-8.
		cut := maxFilenameLen
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut]
	}
	return out
}

// WithinDir reports whether path resolves to a descendant of base. Both are
// made absolute first; a false result means the path escaped the base
// directory and must not be opened.
func WithinDir(base, path string) bool {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
