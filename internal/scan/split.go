package scan

import "strings"

// forEachTopLevelComma calls fn with the offset of every comma in body that
// sits outside nested brackets and quoted literals.
//
// Depth is a single counter shared by '<', '(' and '{' and their closers; a
// stray closer may drive it negative, and commas are top-level only at exactly
// zero. An unterminated literal swallows the rest of body.
func forEachTopLevelComma(body string, fn func(i int)) {
	depth := 0
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case IsQuote(c):
			i, _ = SkipQuoted(body, i)
			continue
		case c == '<' || c == '(' || c == '{':
			depth++
		case c == '>' || c == ')' || c == '}':
			depth--
		case c == ',' && depth == 0:
			fn(i)
		}
		i++
	}
}

// SplitArgs splits the body of a parameter list at top-level commas and trims
// each argument.
//
// An empty body yields an empty list. A trailing segment is kept whenever it
// is non-empty before trimming, so "A, " gives ["A" ""] while "A," gives ["A"].
func SplitArgs(body string) []string {
	if body == "" {
		return nil
	}

	var args []string
	start := 0
	forEachTopLevelComma(body, func(i int) {
		args = append(args, strings.TrimSpace(body[start:i]))
		start = i + 1
	})
	if start < len(body) {
		args = append(args, strings.TrimSpace(body[start:]))
	}
	return args
}
