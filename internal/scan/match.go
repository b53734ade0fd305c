package scan

// NotFound is returned by MatchAngle when the '<' has no matching '>'.
const NotFound = -1

// MatchAngle returns the index of the '>' that closes the '<' at open.
//
// Only angle brackets count towards depth. Quoted literals are skipped. It
// returns NotFound when open does not point at '<', when the text ends before
// depth returns to zero, or when a literal is left unterminated. Callers treat
// NotFound as "no parameter list here" and copy the '<' through.
func MatchAngle(text string, open int) int {
	if open < 0 || open >= len(text) || text[open] != '<' {
		return NotFound
	}

	depth := 0
	for i := open; i < len(text); {
		c := text[i]
		switch {
		case IsQuote(c):
			next, ok := SkipQuoted(text, i)
			if !ok {
				return NotFound
			}
			i = next
			continue
		case c == '<':
			depth++
		case c == '>':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return NotFound
}

// Body returns the text between the '<' at open and its matching '>', plus
// the index of that '>'. ok is false when MatchAngle reports NotFound.
func Body(text string, open int) (body string, closeIdx int, ok bool) {
	closeIdx = MatchAngle(text, open)
	if closeIdx == NotFound {
		return "", NotFound, false
	}
	return text[open+1 : closeIdx], closeIdx, true
}
