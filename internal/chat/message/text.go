// Package message prepares raw chat payloads for relaying.
package message

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Clean - converts raw payload into a single line of printable text.
// Invalid UTF-8 sequences and control characters are dropped,
// every run of line breaks and every other space character become a single space.
// Trailing line breaks are removed.
func Clean(p []byte) string {
	p = bytes.TrimRight(p, "\r\n")
	b := strings.Builder{}
	b.Grow(len(p))
	var prev rune
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		p = p[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		switch {
		case isEOL(r):
			if !isEOL(prev) {
				b.WriteByte(' ')
			}
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.IsControl(r):
			// drop
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

func isEOL(r rune) bool {
	return r == '\n' || r == '\r'
}
