package scan

// CountParams returns the number of top-level parameters in the list opened
// by the '<' at open: 0 for "<>", otherwise the top-level comma count plus one.
//
// It walks the body with the same rules as SplitArgs, so for every
// well-formed non-empty body CountParams(text, open) == len(SplitArgs(body)).
// When the list is unbalanced the count covers the rest of the text. A
// non-'<' byte at open counts zero.
func CountParams(text string, open int) int {
	if open < 0 || open >= len(text) || text[open] != '<' {
		return 0
	}

	body, closeIdx, ok := Body(text, open)
	if !ok {
		body = text[open+1:]
	} else if closeIdx == open+1 {
		return 0
	}

	n := 1
	forEachTopLevelComma(body, func(int) { n++ })
	return n
}
