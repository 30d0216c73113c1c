package service

import (
	"strings"
	"unicode/utf8"
)

// cleanText drops invalid UTF-8 sequences. Both MongoDB and JSONB reject
// them, so free text is cleaned before it reaches the store.
func cleanText(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		b.WriteRune(r)
		s = s[size:]
	}
	return b.String()
}
