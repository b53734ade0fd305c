package rewrite

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// Handler rewrites the arguments of one instantiation. Returning false
// declines the match and leaves the text unchanged.
type Handler func(args []string) (string, bool)

// Pattern binds a template name to its Handler.
type Pattern struct {
	Name    string
	Handler Handler
	Doc     string // one-line description for the patterns listing
}

// Table is an immutable set of patterns. Patterns are kept in registration
// order and in match order: longest name first, registration order breaking
// ties.
type Table struct {
	registered []Pattern
	ordered    []Pattern
	byName     map[string]int
	firsts     [256]bool
}

// NewTable validates patterns and sorts them for matching.
func NewTable(patterns ...Pattern) (*Table, error) {
	t := &Table{
		registered: make([]Pattern, 0, len(patterns)),
		byName:     make(map[string]int, len(patterns)),
	}
	for _, p := range patterns {
		switch {
		case p.Name == "":
			return nil, fmt.Errorf("pattern with empty name")
		case strings.ContainsAny(p.Name, "<> \t\n"):
			return nil, fmt.Errorf("pattern %q: name must not contain brackets or whitespace", p.Name)
		case p.Handler == nil:
			return nil, fmt.Errorf("pattern %q: nil handler", p.Name)
		}
		if _, dup := t.byName[p.Name]; dup {
			return nil, fmt.Errorf("pattern %q registered twice", p.Name)
		}
		t.byName[p.Name] = len(t.registered)
		t.registered = append(t.registered, p)
		t.firsts[p.Name[0]] = true
	}

	t.ordered = slices.Clone(t.registered)
	slices.SortStableFunc(t.ordered, func(a, b Pattern) int {
		return len(b.Name) - len(a.Name)
	})
	return t, nil
}

// DefaultTable returns a table with the built-in patterns.
func DefaultTable() *Table {
	t, err := NewTable(Builtins()...)
	if err != nil {
		panic(err) // builtins are static
	}
	return t
}

// Len returns the number of patterns.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.registered)
}

// Patterns returns the patterns in match order.
func (t *Table) Patterns() []Pattern {
	if t == nil {
		return nil
	}
	return slices.Clone(t.ordered)
}

// Registered returns the patterns in registration order.
func (t *Table) Registered() []Pattern {
	if t == nil {
		return nil
	}
	return slices.Clone(t.registered)
}

// Lookup finds a pattern by name.
func (t *Table) Lookup(name string) (Pattern, bool) {
	if t == nil {
		return Pattern{}, false
	}
	idx, ok := t.byName[name]
	if !ok {
		return Pattern{}, false
	}
	return t.registered[idx], true
}

// Without returns a copy of the table minus the named patterns. Unknown
// names are an error so typos in configuration do not pass silently.
func (t *Table) Without(names ...string) (*Table, error) {
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := t.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown pattern %q", name)
		}
		drop[name] = struct{}{}
	}
	kept := make([]Pattern, 0, t.Len())
	for _, p := range t.Registered() {
		if _, ok := drop[p.Name]; !ok {
			kept = append(kept, p)
		}
	}
	return NewTable(kept...)
}

// With returns a copy of the table with extra patterns registered after the
// existing ones.
func (t *Table) With(patterns ...Pattern) (*Table, error) {
	return NewTable(append(t.Registered(), patterns...)...)
}

// Fingerprint identifies the table contents for cache keys. Handlers cannot
// be compared, so it covers names and docs in match order.
func (t *Table) Fingerprint() string {
	h := sha256.New()
	for _, p := range t.Patterns() {
		h.Write([]byte(p.Name))
		h.Write([]byte{0})
		h.Write([]byte(p.Doc))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// canStart reports whether some pattern name begins with c.
func (t *Table) canStart(c byte) bool {
	return t.firsts[c]
}
