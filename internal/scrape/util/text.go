package util

import (
	"strings"
	"unicode/utf8"
)

// MinFieldLen is the shortest extracted value still considered meaningful.
const MinFieldLen = 2

// Leading glyphs the site uses for redacted or still-loading content.
const placeholderMarkers = "*…•-"

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// CleanField normalizes whitespace and strips stray marker glyphs from the
// edges of an extracted value.
func CleanField(s string) string {
	s = CleanText(s)
	s = strings.Trim(s, placeholderMarkers)
	return strings.TrimSpace(s)
}

// Usable reports whether an extracted value should be accepted: placeholder
// text (anything starting with a marker glyph) is rejected outright, and
// whatever survives cleaning must still clear MinFieldLen.
func Usable(s string) bool {
	s = CleanText(s)
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if strings.ContainsRune(placeholderMarkers, first) {
		return false
	}
	return len(CleanField(s)) >= MinFieldLen
}
