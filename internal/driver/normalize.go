package driver

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares raw compiler output for the rewrite stage.
//
// The text is put into NFC so that visually equal identifiers compare equal,
// then every whitespace run collapses to one space and the ends are trimmed.
// With preserveLines each line is collapsed on its own and blank lines are
// dropped, so line breaks survive into the formatter.
func Normalize(text string, preserveLines bool) string {
	text = norm.NFC.String(text)
	if !preserveLines {
		return strings.Join(strings.Fields(text), " ")
	}

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if collapsed := strings.Join(strings.Fields(line), " "); collapsed != "" {
			kept = append(kept, collapsed)
		}
	}
	return strings.Join(kept, "\n")
}
