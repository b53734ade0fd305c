package highlight

import (
	"strings"
	"testing"
)

func stripANSI(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func TestDisabledIsIdentity(t *testing.T) {
	in := `Foo<A, "x">`
	if got := New(false).Brackets(in); got != in {
		t.Errorf("Brackets = %q", got)
	}
	var h *Highlighter
	if got := h.Brackets(in); got != in {
		t.Errorf("nil Brackets = %q", got)
	}
}

func TestBracketsKeepText(t *testing.T) {
	inputs := []string{
		"Foo<\n  A,\n  B<c>\n>",
		`S<"a<b", 'c'> and 'quoted' prose`,
		"Foo<A, B",
		"a -> b",
	}
	h := New(true)
	for _, in := range inputs {
		got := h.Brackets(in)
		if stripped := stripANSI(got); stripped != in {
			t.Errorf("Brackets(%q) changed text: %q", in, stripped)
		}
	}
}

func TestBracketsColoursByDepth(t *testing.T) {
	got := New(true).Brackets("A<B<c>>")
	outer := palette[0].Sprint("<")
	inner := palette[1].Sprint("<")
	if !strings.Contains(got, outer) || !strings.Contains(got, inner) {
		t.Errorf("missing depth colours in %q", got)
	}
	if n := strings.Count(got, "\x1b["); n != 8 {
		t.Errorf("got %d escape sequences, want 8 (4 brackets)", n)
	}
}

func TestUnmatchedAndProseUncoloured(t *testing.T) {
	h := New(true)
	for _, in := range []string{"Foo<A, B", "it's 'x'", "a -> b"} {
		if got := h.Brackets(in); got != in {
			t.Errorf("Brackets(%q) = %q, want unchanged", in, got)
		}
	}
}
