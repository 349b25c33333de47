package nodedoc

import (
	"strings"
	"unicode"
)

// PageExt is the extension of generated node pages.
const PageExt = ".html"

// Sanitize removes every whitespace rune from name, yielding the file stem.
// "Random Pulse" and "Random  Pulse" both become "RandomPulse".
// Whitespace follows the ECMAScript \s class that published page names
// were derived with: a byte order mark counts, U+0085 (NEL) does not.
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if IsNameSpace(r) {
			return -1
		}
		return r
	}, name)
}

// IsNameSpace reports whether Sanitize removes r.
func IsNameSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// FileName returns the page file name for a node name.
func FileName(name string) string {
	return Sanitize(name) + PageExt
}
