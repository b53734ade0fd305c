package scan

import (
	"unicode"
	"unicode/utf8"
)

// IsQuote reports whether c opens a quoted literal.
func IsQuote(c byte) bool {
	return c == '"' || c == '\''
}

// SkipQuoted returns the offset just past the literal that starts with the
// quote at text[i]. A backslash consumes the byte after it. The second result
// is false when the literal is not terminated; the offset is then len(text).
func SkipQuoted(text string, i int) (int, bool) {
	quote := text[i]
	j := i + 1
	for j < len(text) {
		switch text[j] {
		case '\\':
			j += 2
			continue
		case quote:
			return j + 1, true
		}
		j++
	}
	return len(text), false
}

// OpensList reports whether the '<' at text[i] starts a parameter list rather
// than a comparison or shift: the rune before it must be a letter, a digit,
// '_' or a closing '>'.
func OpensList(text string, i int) bool {
	if i <= 0 || i >= len(text) || text[i] != '<' {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	switch {
	case r == '_' || r == '>':
		return true
	case r == utf8.RuneError:
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
