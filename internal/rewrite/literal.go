package rewrite

import "strings"

// Literal is a verbatim replacement applied once before the pattern passes.
type Literal struct {
	From string
	To   string
}

// DefaultLiterals returns the built-in cleanup literals.
func DefaultLiterals() []Literal {
	return []Literal{
		{From: "18446744073709551615", To: "SIZE_T_MAX"},
	}
}

func newReplacer(lits []Literal) *strings.Replacer {
	oldnew := make([]string, 0, 2*len(lits))
	for _, l := range lits {
		if l.From == "" {
			continue
		}
		oldnew = append(oldnew, l.From, l.To)
	}
	if len(oldnew) == 0 {
		return nil
	}
	return strings.NewReplacer(oldnew...)
}
