// Package highlight colours formatted output for terminals.
package highlight

import (
	"strings"

	"github.com/fatih/color"

	"tmplfmt/internal/scan"
)

var palette = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgMagenta, color.Bold),
	color.New(color.FgCyan, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

var literalColor = color.New(color.FgGreen)

// Highlighter paints parameter-list brackets by nesting depth and quoted
// literals inside lists. A disabled Highlighter returns text unchanged.
type Highlighter struct {
	enabled bool
}

// New returns a Highlighter. When enabled it emits escape codes even if
// stdout is not a terminal; the caller decides.
func New(enabled bool) *Highlighter {
	if enabled {
		for _, c := range palette {
			c.EnableColor()
		}
		literalColor.EnableColor()
	}
	return &Highlighter{enabled: enabled}
}

// Enabled reports whether h emits colour.
func (h *Highlighter) Enabled() bool {
	return h != nil && h.enabled
}

// Brackets colours text. Brackets are recognised with the same rules the
// formatter uses: a '<' after an identifier rune or '>' that has a matching
// '>'. Quotes outside any list are left alone.
func (h *Highlighter) Brackets(text string) string {
	if !h.Enabled() {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text) * 2)
	depth := 0
	plain := 0 // start of the pending uncoloured run

	paint := func(start, end int, c *color.Color) {
		sb.WriteString(text[plain:start])
		sb.WriteString(c.Sprint(text[start:end]))
		plain = end
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '<' && scan.OpensList(text, i) && scan.MatchAngle(text, i) != scan.NotFound:
			paint(i, i+1, palette[depth%len(palette)])
			depth++
		case c == '>' && depth > 0:
			depth--
			paint(i, i+1, palette[depth%len(palette)])
		case scan.IsQuote(c) && depth > 0:
			end, _ := scan.SkipQuoted(text, i)
			paint(i, end, literalColor)
			i = end
			continue
		}
		i++
	}
	sb.WriteString(text[plain:])
	return sb.String()
}
