// Package normalize cleans the raw cell values published by the expense,
// receipt and contra feeds.
//
// Every function in this package is total: malformed input never produces an
// error. Text falls back to the empty string, numbers to zero and dates to
// MinDate. Callers rely on this "garbage in, zeroed out" policy so a single
// bad cell never aborts a dashboard recompute.
package normalize

import (
	"strings"
	"unicode"
)

// Text collapses every run of whitespace (including non-breaking spaces) to a
// single ASCII space and trims the result.
func Text(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Key turns arbitrary header text into a stable field identifier made of
// [A-Za-z0-9_] only. Key is idempotent.
func Key(s string) string {
	text := Text(s)

	var buf strings.Builder
	buf.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == ' ':
			buf.WriteByte('_')
		case c == '_',
			c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9':
			buf.WriteByte(c)
		}
	}
	return buf.String()
}

// AccountName returns the canonical join key for a person or entity name:
// whitespace collapsed, lower-cased, and the first letter of every word
// upper-cased. Every account comparison must go through this function.
func AccountName(s string) string {
	lower := []rune(strings.ToLower(Text(s)))

	prevWord := false
	for i, r := range lower {
		word := isWordRune(r)
		if word && !prevWord {
			lower[i] = unicode.ToUpper(r)
		}
		prevWord = word
	}
	return string(lower)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
