package format

import (
	"strings"

	"tmplfmt/internal/diag"
	"tmplfmt/internal/scan"
	"tmplfmt/internal/source"
)

// Format returns text with large parameter lists broken across lines.
//
// A '<' opens a list only when it follows an identifier rune or '>' and has a
// matching '>'; any other '<' is copied through. Quoted literals inside a list
// are copied whole. A newline in the input ends the current line and adds a
// blank one. Lines carry no trailing whitespace, and the result has no
// trailing newline.
func Format(text string, opts Options) string {
	f := &formatter{opt: opts.withDefaults()}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '<':
			f.openAngle(text, i)
		case c == '>':
			f.closeAngle()
		case c == ',':
			f.pending.WriteByte(c)
			if f.top() {
				f.flush()
			}
		case c == '\n':
			f.flush()
			f.lines = append(f.lines, "")
		case scan.IsQuote(c) && len(f.stack) > 0:
			end, _ := scan.SkipQuoted(text, i)
			f.pending.WriteString(text[i:end])
			i = end
			continue
		default:
			f.pending.WriteByte(c)
		}
		i++
	}
	f.flush()

	return strings.Join(f.lines, "\n")
}

type formatter struct {
	opt     Options
	lines   []string
	pending strings.Builder
	level   int
	stack   []bool // true for lists laid out one parameter per line
}

func (f *formatter) top() bool {
	return len(f.stack) > 0 && f.stack[len(f.stack)-1]
}

func (f *formatter) openAngle(text string, i int) {
	f.pending.WriteByte('<')
	if !scan.OpensList(text, i) {
		return
	}
	if scan.MatchAngle(text, i) == scan.NotFound {
		diag.Emit(f.opt.Reporter, diag.Warning(diag.ScanUnbalancedAngle,
			source.SpanOf(f.opt.File, i, i+1),
			"parameter list is never closed; '<' kept as text"))
		return
	}

	if scan.CountParams(text, i) >= f.opt.MinParams {
		f.flush()
		f.level++
		f.stack = append(f.stack, true)
		return
	}
	f.stack = append(f.stack, false)
}

func (f *formatter) closeAngle() {
	if len(f.stack) == 0 {
		f.pending.WriteByte('>')
		return
	}
	broken := f.top()
	f.stack = f.stack[:len(f.stack)-1]
	if !broken {
		f.pending.WriteByte('>')
		return
	}

	f.flush()
	if f.level > 0 {
		f.level--
	}
	f.emit(">")
}

// flush writes the pending text as a line unless it is blank.
func (f *formatter) flush() {
	line := strings.TrimSpace(f.pending.String())
	f.pending.Reset()
	if line == "" {
		return
	}
	f.emit(line)
}

func (f *formatter) emit(line string) {
	f.lines = append(f.lines, strings.Repeat(f.opt.Indent, f.level)+line)
}
