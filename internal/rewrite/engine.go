package rewrite

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"tmplfmt/internal/scan"
	"tmplfmt/internal/trace"
)

// DefaultMaxPasses bounds the fixpoint loop when Options leaves it unset.
const DefaultMaxPasses = 100

// ErrNoFixpoint is returned when the text still changes after the last
// allowed pass.
var ErrNoFixpoint = errors.New("rewriting did not reach a fixpoint")

// Options configures an Engine.
type Options struct {
	// MaxPasses caps the number of passes; 0 means DefaultMaxPasses.
	MaxPasses int
	// Literals are applied before the first pass. nil means DefaultLiterals;
	// an empty non-nil slice disables the cleanup.
	Literals []Literal
}

// Engine applies a pattern table to text. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	table     *Table
	literals  []Literal
	replacer  *strings.Replacer
	maxPasses int
}

// NewEngine builds an engine over table. A nil table rewrites nothing.
func NewEngine(table *Table, opts Options) *Engine {
	if table == nil {
		table, _ = NewTable() //nolint:errcheck // empty table cannot fail
	}
	lits := opts.Literals
	if lits == nil {
		lits = DefaultLiterals()
	}
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	return &Engine{
		table:     table,
		literals:  slices.Clone(lits),
		replacer:  newReplacer(lits),
		maxPasses: maxPasses,
	}
}

// Table returns the engine's pattern table.
func (e *Engine) Table() *Table { return e.table }

// Literals returns the cleanup literals in application order.
func (e *Engine) Literals() []Literal { return slices.Clone(e.literals) }

// MaxPasses returns the pass ceiling.
func (e *Engine) MaxPasses() int { return e.maxPasses }

// Hits counts rewrites per pattern name.
type Hits map[string]int

// Merge adds other into h.
func (h Hits) Merge(other Hits) {
	for name, n := range other {
		h[name] += n
	}
}

// Total returns the number of rewrites across all patterns.
func (h Hits) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// Names returns the pattern names with at least one hit, sorted.
func (h Hits) Names() []string {
	return slices.Sorted(maps.Keys(h))
}

// Result is the outcome of Rewrite.
type Result struct {
	Text   string
	Passes int
	Hits   Hits
}

// Cleanup applies the literal replacements.
func (e *Engine) Cleanup(text string) string {
	if e.replacer == nil {
		return text
	}
	return e.replacer.Replace(text)
}

// Pass performs one left-to-right substitution pass.
func (e *Engine) Pass(text string) (string, Hits) {
	return e.pass(text, trace.Nop, 0)
}

// Rewrite applies the cleanup literals and then repeats Pass until the text
// stops changing. MaxPasses bounds the passes that change the text; the pass
// that confirms the fixpoint comes on top, so Passes may reach MaxPasses+1.
// The returned Result is valid even on error: it holds the text after the
// last completed pass.
func (e *Engine) Rewrite(ctx context.Context, text string) (Result, error) {
	tr := trace.FromContext(ctx)
	span, _ := trace.StartSpan(ctx, trace.ScopeStage, "rewrite")

	res := Result{Text: e.Cleanup(text), Hits: Hits{}}
	for {
		if err := ctx.Err(); err != nil {
			span.End("cancelled")
			return res, err
		}

		res.Passes++
		ps := trace.Begin(tr, trace.ScopePass, "pass", span.ID())
		next, hits := e.pass(res.Text, tr, ps.ID())
		res.Hits.Merge(hits)
		ps.SetInt("n", res.Passes).SetInt("hits", hits.Total()).End("")

		if next == res.Text {
			span.SetInt("passes", res.Passes).End("")
			return res, nil
		}
		res.Text = next
		if res.Passes > e.maxPasses {
			break
		}
	}

	span.SetInt("passes", res.Passes).End("no fixpoint")
	return res, fmt.Errorf("%w after %d passes", ErrNoFixpoint, res.Passes)
}

func (e *Engine) pass(text string, tr trace.Tracer, parent uint64) (string, Hits) {
	hits := Hits{}
	traced := tr.Enabled()

	var out strings.Builder
	out.Grow(len(text))
	copied := 0 // text[:copied] is already in out

	for i := 0; i < len(text); {
		if !e.table.canStart(text[i]) {
			i++
			continue
		}

		end := -1
		for _, p := range e.table.ordered {
			open := i + len(p.Name)
			if open >= len(text) || text[open] != '<' || !strings.HasPrefix(text[i:], p.Name) {
				continue
			}
			body, closeIdx, ok := scan.Body(text, open)
			if !ok {
				if traced {
					trace.Point(tr, trace.ScopeMatch, p.Name, "unbalanced", parent)
				}
				continue
			}
			repl, ok := p.Handler(scan.SplitArgs(body))
			if !ok {
				if traced {
					trace.Point(tr, trace.ScopeMatch, p.Name, "declined", parent)
				}
				continue
			}
			if traced {
				trace.Point(tr, trace.ScopeMatch, p.Name, "hit", parent)
			}
			out.WriteString(text[copied:i])
			out.WriteString(repl)
			hits[p.Name]++
			end = closeIdx + 1
			break
		}

		if end < 0 {
			i++
			continue
		}
		i, copied = end, end
	}

	if copied == 0 {
		return text, hits
	}
	out.WriteString(text[copied:])
	return out.String(), hits
}
